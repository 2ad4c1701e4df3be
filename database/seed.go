package database

import (
	"cboost/models"
	"fmt"
	"log"

	"gorm.io/gorm"
)

type seedModule struct {
	Title        string
	Description  string
	Duration     string
	Introduction string
	Lessons      int
	Exercises    []string
}

var defaultModules = []seedModule{
	{
		Title:        "Comprendre sa valeur personnelle",
		Description:  "Découvrez votre vraie valeur et apprenez à la reconnaître au quotidien",
		Duration:     "45 min",
		Introduction: "Dans ce module, vous allez explorer les fondements de votre valeur personnelle et apprendre à reconnaître vos qualités uniques.",
		Lessons:      6,
		Exercises: []string{
			"Listez 10 qualités que vous possédez",
			"Identifiez 3 réussites passées",
			"Créez votre affirmation personnelle",
			"Pratiquez l'auto-reconnaissance quotidienne",
			"Établissez vos valeurs fondamentales",
		},
	},
	{
		Title:        "Surmonter le syndrome de l'imposteur",
		Description:  "Techniques concrètes pour vaincre la peur de ne pas être à la hauteur",
		Duration:     "60 min",
		Introduction: "Le syndrome de l'imposteur touche 70% des personnes. Apprenez à le reconnaître et à le surmonter définitivement.",
		Lessons:      8,
		Exercises: []string{
			"Analysez vos pensées limitantes",
			"Reconstituez votre parcours de réussites",
			"Pratiquez l'auto-compassion",
			"Développez votre dialogue intérieur positif",
			"Créez votre portfolio de preuves",
			"Techniques de recadrage cognitif",
		},
	},
	{
		Title:        "Développer son assertivité",
		Description:  "Apprenez à vous affirmer avec respect et bienveillance",
		Duration:     "50 min",
		Introduction: "L'assertivité est la capacité à exprimer ses opinions et besoins tout en respectant ceux des autres.",
		Lessons:      7,
		Exercises: []string{
			"Techniques de communication assertive",
			"Dire non sans culpabiliser",
			"Gérer les conflits constructivement",
			"Exprimer ses besoins clairement",
			"Pratiquer l'écoute active",
			"Développer son langage corporel confiant",
		},
	},
	{
		Title:        "Gérer l'anxiété sociale",
		Description:  "Stratégies pour vous sentir à l'aise en société",
		Duration:     "55 min",
		Introduction: "L'anxiété sociale peut limiter nos interactions. Découvrez des techniques éprouvées pour la surmonter.",
		Lessons:      6,
		Exercises: []string{
			"Techniques de respiration pour l'anxiété",
			"Exposition progressive aux situations sociales",
			"Restructuration cognitive des pensées négatives",
			"Préparation mentale avant les événements sociaux",
			"Développement de sujets de conversation",
			"Pratique de la pleine conscience sociale",
		},
	},
	{
		Title:        "Cultiver l'estime de soi",
		Description:  "Construisez une image positive et durable de vous-même",
		Duration:     "65 min",
		Introduction: "L'estime de soi est la fondation de la confiance. Apprenez à la cultiver durablement.",
		Lessons:      9,
		Exercises: []string{
			"Journal de gratitude personnel",
			"Célébrez vos petites victoires",
			"Créez votre vision idéale",
			"Pratiquez l'autocompassion",
			"Développez vos talents uniques",
			"Établissez des objectifs personnels alignés",
			"Créez votre routine de bien-être",
			"Pratiquez l'affirmation positive quotidienne",
		},
	},
	{
		Title:        "Prendre des décisions avec confiance",
		Description:  "Méthodes pour décider sereinement et assumer ses choix",
		Duration:     "40 min",
		Introduction: "Prendre des décisions peut être source d'anxiété. Découvrez des méthodes pour décider avec confiance.",
		Lessons:      5,
		Exercises: []string{
			"Matrice de décision personnalisée",
			"Technique du pour/contre évolué",
			"Accepter l'imperfection et l'incertitude",
			"Écouter son intuition",
			"Prendre des décisions rapides pour les petits choix",
		},
	},
}

// SeedModules inserts the default training content when the modules table is
// empty. Content is static after this point.
func SeedModules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default modules...")

	return db.Transaction(func(tx *gorm.DB) error {
		for i, sm := range defaultModules {
			module := models.Module{
				Title:        sm.Title,
				Description:  sm.Description,
				Duration:     sm.Duration,
				Introduction: sm.Introduction,
				OrderIndex:   i + 1,
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}

			for l := 1; l <= sm.Lessons; l++ {
				lesson := models.Lesson{
					ModuleID:   module.ID,
					Title:      fmt.Sprintf("Leçon %d", l),
					OrderIndex: l,
				}
				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}
			}

			for e, desc := range sm.Exercises {
				exercise := models.Exercise{
					ModuleID:    module.ID,
					Description: desc,
					OrderIndex:  e + 1,
				}
				if err := tx.Create(&exercise).Error; err != nil {
					return err
				}
			}

			workbook := models.Resource{
				ModuleID: module.ID,
				Title:    "Cahier d'exercices - " + sm.Title,
				URL:      fmt.Sprintf("/resources/module-%d-workbook.pdf", i+1),
			}
			if err := tx.Create(&workbook).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
