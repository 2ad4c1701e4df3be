package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress statuses
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// ModuleProgress tracks one user's state within one module. Progress is always
// derived from the completed-lesson count, never set directly.
type ModuleProgress struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_module;not null"`
	ModuleID uint `json:"module_id" gorm:"uniqueIndex:idx_user_module;not null"`

	Status             string         `json:"status" gorm:"default:'NOT_STARTED'"`
	CompletedLessons   datatypes.JSON `json:"completed_lessons"`
	CompletedExercises datatypes.JSON `json:"completed_exercises"`
	Progress           int            `json:"progress" gorm:"default:0"` // 0-100

	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"` // set exactly once
	TimeSpentMinutes int64      `json:"time_spent_minutes" gorm:"default:0"`

	IsDeleted bool `json:"-" gorm:"default:false"`
}

// LessonIDs decodes the completed-lesson list. A nil or empty column decodes
// to an empty slice.
func (p *ModuleProgress) LessonIDs() []uint {
	return decodeIDList(p.CompletedLessons)
}

// ExerciseIDs decodes the completed-exercise list
func (p *ModuleProgress) ExerciseIDs() []uint {
	return decodeIDList(p.CompletedExercises)
}

// SetLessonIDs encodes the completed-lesson list
func (p *ModuleProgress) SetLessonIDs(ids []uint) {
	p.CompletedLessons = encodeIDList(ids)
}

// SetExerciseIDs encodes the completed-exercise list
func (p *ModuleProgress) SetExerciseIDs(ids []uint) {
	p.CompletedExercises = encodeIDList(ids)
}

func decodeIDList(raw datatypes.JSON) []uint {
	if len(raw) == 0 {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		// malformed document, treat as empty rather than failing mid-request
		return []uint{}
	}
	return ids
}

func encodeIDList(ids []uint) datatypes.JSON {
	if ids == nil {
		ids = []uint{}
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

// ContainsID reports whether id is present in the list
func ContainsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
