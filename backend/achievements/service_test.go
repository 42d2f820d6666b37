package achievements

import (
	"fmt"
	"testing"
	"time"

	"medicgrow/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:achievements_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Achievement{},
		&models.Attempt{}, &models.AttemptResponse{}, &models.Activity{},
	))
	return db
}

func TestCheckPersistsAwardsAndTitle(t *testing.T) {
	db := testDB(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", Title: DefaultTitle}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Attempt{
		UserID: user.ID, Exam: "NHM", Score: 10, TotalQuestions: 10,
		Date: time.Now().Add(-time.Hour),
	}).Error)

	newly, err := Check(db, user.ID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, newly)

	var stored []models.Achievement
	db.Where("user_id = ?", user.ID).Find(&stored)
	assert.Len(t, stored, len(newly))

	var reloaded models.User
	db.First(&reloaded, user.ID)
	assert.Equal(t, TitleFor(len(stored)), reloaded.Title)

	// Second call awards nothing new.
	again, err := Check(db, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestCheckStoresEachTitleOnce(t *testing.T) {
	db := testDB(t)

	user := models.User{Name: "Tanu", Email: "tanu@example.com", Title: DefaultTitle}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Attempt{
		UserID: user.ID, Exam: "NHM", Score: 10, TotalQuestions: 10,
		Date: time.Now().Add(-time.Hour),
	}).Error)

	newly, err := Check(db, user.ID, nil)
	require.NoError(t, err)
	require.NotEmpty(t, newly)

	var stored []models.Achievement
	db.Where("user_id = ?", user.ID).Find(&stored)

	seen := make(map[string]int)
	for _, a := range stored {
		seen[a.Title]++
	}
	for title, n := range seen {
		assert.Equalf(t, 1, n, "achievement %q stored %d times", title, n)
	}

	// The persisted count and the rank title must agree.
	var reloaded models.User
	db.First(&reloaded, user.ID)
	assert.Equal(t, TitleFor(len(stored)), reloaded.Title)

	// A second call must not grow the table.
	again, err := Check(db, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, again)

	var count int64
	db.Model(&models.Achievement{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(len(stored)), count)
}

func TestCheckMissingUserIsNoOp(t *testing.T) {
	db := testDB(t)

	newly, err := Check(db, 9999, nil)
	assert.NoError(t, err)
	assert.Empty(t, newly)
}

func TestCheckCountsGamesCompletedToday(t *testing.T) {
	db := testDB(t)

	user := models.User{Name: "Ravi", Email: "ravi@example.com", Title: DefaultTitle, StoryGamesCompleted: 5}
	require.NoError(t, db.Create(&user).Error)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Activity{
			UserID: user.ID,
			Action: models.ActionGameCompleted,
			Date:   time.Now().Add(-time.Duration(i) * time.Minute),
		}).Error)
	}

	newly, err := Check(db, user.ID, &GameMetadata{GameSuccess: true, GameOver: true, FinalStatus: "Stable", InitialStatus: "Stable"})
	require.NoError(t, err)

	found := false
	for _, a := range newly {
		if a.Title == "Double Shift" {
			found = true
		}
	}
	assert.True(t, found, "expected Double Shift after 5 completed games today")
}

func TestCheckAndAwardSwallowsErrors(t *testing.T) {
	db := testDB(t)
	// No tables dropped here, but an unknown user must not panic.
	assert.Empty(t, CheckAndAward(db, 12345, nil))
}
