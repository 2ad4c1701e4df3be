package database

import (
	"cboost/models"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedModules(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, SeedModules(db))

	var moduleCount int64
	require.NoError(t, db.Model(&models.Module{}).Count(&moduleCount).Error)
	require.EqualValues(t, 6, moduleCount)

	// Lesson counts follow the training plan
	expected := map[int]int64{1: 6, 2: 8, 3: 7, 4: 6, 5: 9, 6: 5}
	var modules []models.Module
	require.NoError(t, db.Order("order_index asc").Find(&modules).Error)
	for _, module := range modules {
		var lessons int64
		require.NoError(t, db.Model(&models.Lesson{}).Where("module_id = ?", module.ID).Count(&lessons).Error)
		require.Equal(t, expected[module.OrderIndex], lessons, "module %q", module.Title)

		var exercises int64
		require.NoError(t, db.Model(&models.Exercise{}).Where("module_id = ?", module.ID).Count(&exercises).Error)
		require.NotZero(t, exercises)

		var resources int64
		require.NoError(t, db.Model(&models.Resource{}).Where("module_id = ?", module.ID).Count(&resources).Error)
		require.EqualValues(t, 1, resources)
	}

	// Seeding is a no-op once content exists
	require.NoError(t, SeedModules(db))
	require.NoError(t, db.Model(&models.Module{}).Count(&moduleCount).Error)
	require.EqualValues(t, 6, moduleCount)
}
