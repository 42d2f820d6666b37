package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"medicgrow/backend/config"
	"medicgrow/backend/models"
	"medicgrow/backend/routes"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:controllers_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	var result map[string]interface{}
	json.Unmarshal(body, &result)
	return resp.StatusCode, result
}

func getJSON(t *testing.T, app *fiber.App, path, token string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	status, _ := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, result := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := result["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginSubmitFlow(t *testing.T) {
	app, db := setupApp(t)

	token := registerAndLogin(t, app, "Asha", "asha@example.com")

	// Seed a small question bank.
	questions := []models.Question{
		{Exam: "NHM", Topic: "Pharmacology", Question: "Normal adult HR range?",
			Options: `["40-60","60-100","100-140","140-180"]`, Correct: 1, Explanation: "60-100 bpm is normal."},
		{Exam: "NHM", Topic: "Pharmacology", Question: "Route of insulin?",
			Options: `["Oral","Subcutaneous","Topical","Rectal"]`, Correct: 1, Explanation: "Insulin is given subcutaneously."},
	}
	require.NoError(t, db.Create(&questions).Error)

	status, body := getJSON(t, app, "/api/quiz/generate/NHM", token)
	require.Equal(t, fiber.StatusOK, status)
	var quiz []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &quiz))
	assert.Len(t, quiz, 2)

	q1, q2 := questions[0].ID, questions[1].ID
	one := 1
	status, result := postJSON(t, app, "/api/quiz/submit", token, map[string]interface{}{
		"exam": "NHM",
		"responses": []map[string]interface{}{
			{"questionId": q1, "selectedOption": one},
			{"questionId": q2, "selectedOption": one},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	attempt := result["attempt"].(map[string]interface{})
	assert.Equal(t, float64(2), attempt["Score"])

	// A perfect first quiz earns the starter badges.
	newAchievements := result["newAchievements"].([]interface{})
	earned := make(map[string]bool)
	for _, a := range newAchievements {
		earned[a.(map[string]interface{})["Title"].(string)] = true
	}
	assert.True(t, earned["First Step"])
	assert.True(t, earned["Perfect Score"])
	assert.True(t, earned["Brilliant Beginning"])

	status, body = getJSON(t, app, "/api/quiz/history", token)
	require.Equal(t, fiber.StatusOK, status)
	var history []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history, 1)
}

func TestGenerateSkipsMalformedOptions(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, "Omar", "omar@example.com")

	questions := []models.Question{
		{Exam: "ESIC", Topic: "Anatomy", Question: "Largest organ?",
			Options: `["Skin","Liver","Heart","Lung"]`, Correct: 0, Explanation: "The skin."},
		{Exam: "ESIC", Topic: "Anatomy", Question: "Broken row",
			Options: `not-json`, Correct: 0, Explanation: "n/a"},
	}
	require.NoError(t, db.Create(&questions).Error)

	status, body := getJSON(t, app, "/api/quiz/generate/ESIC", token)
	require.Equal(t, fiber.StatusOK, status)

	var quiz []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &quiz))
	require.Len(t, quiz, 1)
	assert.Equal(t, "Largest organ?", quiz[0]["question"])
	assert.NotNil(t, quiz[0]["options"])
}

func TestSubmitGradesWrongAnswers(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, "Ravi", "ravi@example.com")

	question := models.Question{Exam: "CHO", Topic: "Nutrition", Question: "Vitamin C source?",
		Options: `["Citrus","Rice","Milk","Eggs"]`, Correct: 0, Explanation: "Citrus fruits."}
	require.NoError(t, db.Create(&question).Error)

	wrong := 2
	status, result := postJSON(t, app, "/api/quiz/submit", token, map[string]interface{}{
		"exam": "CHO",
		"responses": []map[string]interface{}{
			{"questionId": question.ID, "selectedOption": wrong},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)
	attempt := result["attempt"].(map[string]interface{})
	assert.Equal(t, float64(0), attempt["Score"])
}

func TestAISubmitTrustsProvidedAnswers(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "Meera", "meera@example.com")

	status, result := postJSON(t, app, "/api/quiz/submit", token, map[string]interface{}{
		"exam": "AIIMS",
		"isAI": true,
		"responses": []map[string]interface{}{
			{"selectedOption": 1, "correctOption": 1},
			{"selectedOption": 2, "correctOption": 3},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	attempt := result["attempt"].(map[string]interface{})
	assert.Equal(t, float64(1), attempt["Score"])
	assert.Equal(t, "AIIMS (AI)", attempt["Exam"])
}

func TestLoginStreak(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, "Divya", "divya@example.com")
	_ = token

	var user models.User
	require.NoError(t, db.Where("email = ?", "divya@example.com").First(&user).Error)
	assert.Equal(t, 1, user.LoginStreak)

	// Pretend the last login was yesterday; the next login extends the
	// streak.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&user).Updates(map[string]interface{}{
		"last_login": yesterday, "login_streak": 3,
	}).Error)

	status, _ := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email": "divya@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Equal(t, 4, user.LoginStreak)

	// A three-day gap resets it.
	staleLogin := time.Now().AddDate(0, 0, -3)
	require.NoError(t, db.Model(&user).Update("last_login", staleLogin).Error)

	status, _ = postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email": "divya@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Equal(t, 1, user.LoginStreak)
}

func TestAuthRequired(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := getJSON(t, app, "/api/quiz/history", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = getJSON(t, app, "/api/quiz/generate/NHM", "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminRoutes(t *testing.T) {
	app, db := setupApp(t)

	// Students cannot reach admin routes.
	studentToken := registerAndLogin(t, app, "Kiran", "kiran@example.com")
	status, _ := getJSON(t, app, "/api/admin/stats", studentToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	// The bootstrap admin login creates the account on first use.
	status, result := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "admin123",
	})
	require.Equal(t, fiber.StatusOK, status)
	adminToken := result["token"].(string)

	status, _ = getJSON(t, app, "/api/admin/stats", adminToken)
	assert.Equal(t, fiber.StatusOK, status)

	status, result = postJSON(t, app, "/api/admin/students", adminToken, map[string]string{
		"name": "New Student", "email": "new@example.com", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusCreated, status)

	// Duplicate email is rejected.
	status, _ = postJSON(t, app, "/api/admin/students", adminToken, map[string]string{
		"name": "Dup", "email": "new@example.com", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var student models.User
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&student).Error)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/admin/students/%d", student.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	err = db.Where("email = ?", "new@example.com").First(&student).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletedStudentEmailCanRegisterAgain(t *testing.T) {
	app, db := setupApp(t)

	registerAndLogin(t, app, "Tanu", "tanu@example.com")

	status, result := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "admin123",
	})
	require.Equal(t, fiber.StatusOK, status)
	adminToken := result["token"].(string)

	var student models.User
	require.NoError(t, db.Where("email = ?", "tanu@example.com").First(&student).Error)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/admin/students/%d", student.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The email must be free again after deletion.
	status, _ = postJSON(t, app, "/api/auth/register", "", map[string]string{
		"name": "Tanu Again", "email": "tanu@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestChatHistoryEmptyByDefault(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "Nisha", "nisha@example.com")

	status, body := getJSON(t, app, "/api/ai/history", token)
	require.Equal(t, fiber.StatusOK, status)

	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &messages))
	assert.Empty(t, messages)
}
