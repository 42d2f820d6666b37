package controllers

import (
	"fmt"
	"sort"
	"strings"

	"medicgrow/backend/achievements"
	"medicgrow/backend/config"
	"medicgrow/backend/models"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// Students godoc
// @Summary List students with their quiz stats
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Router /admin/students [get]
func (adc *AdminController) Students(c *fiber.Ctx) error {
	var students []models.User
	if err := adc.DB.Preload("Achievements").Where("role = ?", "student").Find(&students).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(students))
	for _, student := range students {
		var attempts []models.Attempt
		adc.DB.Where("user_id = ?", student.ID).Order("date desc").Find(&attempts)

		avgScore := 0.0
		var lastAttempt interface{}
		if len(attempts) > 0 {
			sum := 0.0
			for i := range attempts {
				sum += attempts[i].Percentage()
			}
			avgScore = sum / float64(len(attempts)) * 100
			lastAttempt = attempts[0].Date
		}

		result = append(result, fiber.Map{
			"student":      student,
			"totalQuizzes": len(attempts),
			"avgScore":     fmt.Sprintf("%.2f", avgScore),
			"lastAttempt":  lastAttempt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// AddStudent creates a student account on behalf of an admin.
func (adc *AdminController) AddStudent(c *fiber.Ctx) error {
	type StudentInput struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input StudentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var existing models.User
	if err := adc.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	student := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         "student",
		Title:        achievements.DefaultTitle,
	}
	if err := adc.DB.Create(&student).Error; err != nil {
		return utils.BadRequest(c, "Could not create student")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"message": "Student created successfully",
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
	})
}

// DeleteStudent removes a student account together with their attempts
// and responses. Admin accounts cannot be deleted through this route.
func (adc *AdminController) DeleteStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid student id")
	}

	var student models.User
	if err := adc.DB.Where("id = ? AND role = ?", id, "student").First(&student).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	// Hard delete: a soft-deleted row would keep holding the unique
	// email index and block the address from ever registering again.
	var attemptIDs []uint
	adc.DB.Model(&models.Attempt{}).Where("user_id = ?", student.ID).Pluck("id", &attemptIDs)
	if len(attemptIDs) > 0 {
		adc.DB.Unscoped().Where("attempt_id IN ?", attemptIDs).Delete(&models.AttemptResponse{})
		adc.DB.Unscoped().Where("user_id = ?", student.ID).Delete(&models.Attempt{})
	}
	adc.DB.Unscoped().Where("user_id = ?", student.ID).Delete(&models.Achievement{})
	adc.DB.Unscoped().Delete(&student)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Student and their data deleted successfully",
	})
}

// StudentReport returns one student's attempts and aggregate stats.
func (adc *AdminController) StudentReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid student id")
	}

	var student models.User
	if err := adc.DB.Preload("Achievements").
		Where("id = ? AND role = ?", id, "student").First(&student).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	var attempts []models.Attempt
	adc.DB.Where("user_id = ?", student.ID).Order("date desc").Find(&attempts)

	avgScore, highestScore := attemptStats(attempts)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"student":  student,
		"attempts": attempts,
		"stats": fiber.Map{
			"totalAttempts": len(attempts),
			"averageScore":  avgScore,
			"highestScore":  highestScore,
		},
	})
}

// DownloadStudentReport streams the student's attempt history as an
// xlsx workbook.
func (adc *AdminController) DownloadStudentReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid student id")
	}

	var student models.User
	if err := adc.DB.Where("id = ? AND role = ?", id, "student").First(&student).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	var attempts []models.Attempt
	adc.DB.Where("user_id = ?", student.ID).Order("date desc").Find(&attempts)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Exam", "Date", "Score", "Total Questions", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, a := range attempts {
		values := []interface{}{
			a.Exam,
			a.Date.Format("02/01/2006"),
			a.Score,
			a.TotalQuestions,
			fmt.Sprintf("%.2f%%", a.Percentage()*100),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.InternalServerError(c, "Could not build report file")
	}

	filename := fmt.Sprintf("report_%s.xlsx", strings.ReplaceAll(student.Name, " ", "_"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s`, filename))
	return c.Send(buf.Bytes())
}

// Analytics aggregates attempts per exam.
func (adc *AdminController) Analytics(c *fiber.Ctx) error {
	var attempts []models.Attempt
	if err := adc.DB.Find(&attempts).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	type examAgg struct {
		count      int
		totalScore float64
	}
	examStats := make(map[string]*examAgg)
	for i := range attempts {
		a := &attempts[i]
		if examStats[a.Exam] == nil {
			examStats[a.Exam] = &examAgg{}
		}
		examStats[a.Exam].count++
		examStats[a.Exam].totalScore += a.Percentage() * 100
	}

	exams := make([]string, 0, len(examStats))
	for exam := range examStats {
		exams = append(exams, exam)
	}
	sort.Strings(exams)

	analytics := make([]fiber.Map, 0, len(exams))
	for _, exam := range exams {
		agg := examStats[exam]
		analytics = append(analytics, fiber.Map{
			"exam":          exam,
			"avgScore":      fmt.Sprintf("%.2f", agg.totalScore/float64(agg.count)),
			"totalAttempts": agg.count,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"totalAttempts": len(attempts),
		"analytics":     analytics,
	})
}

// Stats returns platform-wide totals.
func (adc *AdminController) Stats(c *fiber.Ctx) error {
	var totalUsers, totalQuestions, totalAttempts int64
	adc.DB.Model(&models.User{}).Count(&totalUsers)
	adc.DB.Model(&models.Question{}).Count(&totalQuestions)
	adc.DB.Model(&models.Attempt{}).Count(&totalAttempts)

	var attempts []models.Attempt
	adc.DB.Find(&attempts)

	averageScore := 0.0
	if len(attempts) > 0 {
		sum := 0.0
		for i := range attempts {
			sum += attempts[i].Percentage() * 100
		}
		averageScore = sum / float64(len(attempts))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"totalUsers":     totalUsers,
		"totalQuestions": totalQuestions,
		"totalAttempts":  totalAttempts,
		"averageScore":   fmt.Sprintf("%.2f", averageScore),
	})
}

// Users lists every account.
func (adc *AdminController) Users(c *fiber.Ctx) error {
	var users []models.User
	if err := adc.DB.Preload("Achievements").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, users)
}

// Questions lists the question bank.
func (adc *AdminController) Questions(c *fiber.Ctx) error {
	var questions []models.Question
	if err := adc.DB.Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, questions)
}

// CreateQuestion adds a question to the bank.
func (adc *AdminController) CreateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := adc.DB.Create(&question).Error; err != nil {
		return utils.BadRequest(c, "Could not create question")
	}
	return utils.Success(c, fiber.StatusCreated, question)
}

// Attempts lists every attempt with the owning user's name.
func (adc *AdminController) Attempts(c *fiber.Ctx) error {
	var attempts []models.Attempt
	if err := adc.DB.Order("date desc").Find(&attempts).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	names := make(map[uint]string)
	formatted := make([]fiber.Map, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		name, ok := names[a.UserID]
		if !ok {
			var user models.User
			if err := adc.DB.First(&user, a.UserID).Error; err == nil {
				name = user.Name
			}
			names[a.UserID] = name
		}
		formatted = append(formatted, fiber.Map{
			"id":                a.ID,
			"userName":          name,
			"score":             fmt.Sprintf("%.2f", a.Percentage()*100),
			"questionsAnswered": a.TotalQuestions,
			"date":              a.Date,
		})
	}

	return utils.Success(c, fiber.StatusOK, formatted)
}

// Activities returns the 100 most recent activity records.
func (adc *AdminController) Activities(c *fiber.Ctx) error {
	var activities []models.Activity
	if err := adc.DB.Order("date desc").Limit(100).Find(&activities).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, activities)
}
