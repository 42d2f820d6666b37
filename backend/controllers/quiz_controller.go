package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"medicgrow/backend/achievements"
	"medicgrow/backend/ai"
	"medicgrow/backend/config"
	"medicgrow/backend/models"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	maxQuizQuestions     = 100
	questionsPerTopic    = 20
	aiQuestionsPerTopic  = 10
	initialAITopicsCount = 2
)

type QuizController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Mistral *ai.MistralClient
}

func NewQuizController(db *gorm.DB, cfg *config.Config, mistral *ai.MistralClient) *QuizController {
	return &QuizController{DB: db, Cfg: cfg, Mistral: mistral}
}

// Generate godoc
// @Summary Generate a quiz from the question bank
// @Description Returns up to 100 questions for an exam, sampled per topic
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Router /quiz/generate/{exam} [get]
func (qc *QuizController) Generate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	exam := c.Params("exam")

	var topics []string
	if err := qc.DB.Model(&models.Question{}).Where("exam = ?", exam).
		Distinct().Pluck("topic", &topics).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var allQuestions []models.Question
	for _, topic := range topics {
		var topicQuestions []models.Question
		qc.DB.Where("exam = ? AND topic = ?", exam, topic).
			Order("RANDOM()").Limit(questionsPerTopic).
			Find(&topicQuestions)
		allQuestions = append(allQuestions, topicQuestions...)
	}

	if len(allQuestions) > maxQuizQuestions {
		rand.Shuffle(len(allQuestions), func(i, j int) {
			allQuestions[i], allQuestions[j] = allQuestions[j], allQuestions[i]
		})
		allQuestions = allQuestions[:maxQuizQuestions]
	}

	result := make([]fiber.Map, 0, len(allQuestions))
	for _, q := range allQuestions {
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			log.Printf("Skipping question %d: malformed options: %v", q.ID, err)
			continue
		}
		result = append(result, fiber.Map{
			"id":          q.ID,
			"exam":        q.Exam,
			"topic":       q.Topic,
			"question":    q.Question,
			"options":     options,
			"correct":     q.Correct,
			"explanation": q.Explanation,
		})
	}

	utils.LogActivity(qc.DB, userID, models.ActionQuizStarted, fmt.Sprintf("Started quiz: %s", exam))

	return c.JSON(result)
}

// GenerateAI returns the syllabus plus questions for the first two
// topics so the quiz can start immediately; the rest is fetched in the
// background via GenerateAIRemaining.
func (qc *QuizController) GenerateAI(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	exam := c.Params("exam")

	topics := qc.Mistral.Syllabus(c.Context(), exam)

	initialTopics := topics
	if len(initialTopics) > initialAITopicsCount {
		initialTopics = initialTopics[:initialAITopicsCount]
	}

	questions := qc.generateForTopics(c, initialTopics, exam)

	utils.LogActivity(qc.DB, userID, models.ActionQuizStarted, fmt.Sprintf("Started AI quiz (Initial): %s", exam))

	return c.JSON(fiber.Map{
		"questions": questions,
		"allTopics": topics,
		"exam":      exam,
	})
}

// GenerateAIRemaining generates questions for the remaining syllabus
// topics.
func (qc *QuizController) GenerateAIRemaining(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, qc.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type RemainingInput struct {
		Exam   string   `json:"exam"`
		Topics []string `json:"topics"`
	}

	var input RemainingInput
	if err := c.BodyParser(&input); err != nil || input.Topics == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Topics are required",
		})
	}

	questions := qc.generateForTopics(c, input.Topics, input.Exam)

	return c.JSON(fiber.Map{
		"questions": questions,
	})
}

// generateForTopics fans out one AI call per topic and joins the
// results. A failed topic contributes nothing instead of failing the
// whole batch.
func (qc *QuizController) generateForTopics(c *fiber.Ctx, topics []string, exam string) []fiber.Map {
	results := make([][]ai.GeneratedQuestion, len(topics))

	g, ctx := errgroup.WithContext(c.Context())
	for i, topic := range topics {
		i, topic := i, topic
		g.Go(func() error {
			results[i] = qc.Mistral.QuestionsForTopic(ctx, topic, exam, aiQuestionsPerTopic)
			return nil
		})
	}
	g.Wait()

	questions := make([]fiber.Map, 0)
	for _, batch := range results {
		for _, q := range batch {
			if q.Question == "" || len(q.Options) == 0 {
				continue
			}
			questions = append(questions, fiber.Map{
				"id":          "ai_" + uuid.NewString(),
				"question":    q.Question,
				"options":     q.Options,
				"correct":     q.Correct,
				"explanation": q.Explanation,
				"topic":       q.Topic,
				"exam":        q.Exam,
			})
		}
	}
	return questions
}

// Submit godoc
// @Summary Submit a completed quiz
// @Description Grades the responses, stores the attempt and checks achievements
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /quiz/submit [post]
func (qc *QuizController) Submit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type ResponseInput struct {
		QuestionID     *uint `json:"questionId"`
		SelectedOption *int  `json:"selectedOption"`
		CorrectOption  *int  `json:"correctOption"` // AI quizzes only
	}
	type SubmitInput struct {
		Exam      string          `json:"exam"`
		IsAI      bool            `json:"isAI"`
		Responses []ResponseInput `json:"responses"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	score := 0
	responses := make([]models.AttemptResponse, 0, len(input.Responses))
	for _, resp := range input.Responses {
		isCorrect := false
		var questionID *uint

		if input.IsAI {
			isCorrect = resp.CorrectOption != nil && resp.SelectedOption != nil &&
				*resp.CorrectOption == *resp.SelectedOption
		} else if resp.QuestionID != nil {
			var question models.Question
			if err := qc.DB.First(&question, *resp.QuestionID).Error; err == nil {
				isCorrect = resp.SelectedOption != nil && question.Correct == *resp.SelectedOption
				questionID = resp.QuestionID
			}
		}

		if isCorrect {
			score++
		}

		responses = append(responses, models.AttemptResponse{
			QuestionID:     questionID,
			SelectedOption: resp.SelectedOption,
			IsCorrect:      isCorrect,
		})
	}

	exam := input.Exam
	if input.IsAI {
		exam = fmt.Sprintf("%s (AI)", input.Exam)
	}

	attempt := models.Attempt{
		UserID:         userID,
		Exam:           exam,
		Score:          score,
		TotalQuestions: len(input.Responses),
		Responses:      responses,
		Date:           time.Now(),
	}

	if err := qc.DB.Create(&attempt).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not save attempt",
		})
	}

	utils.LogActivity(qc.DB, userID, models.ActionQuizCompleted,
		fmt.Sprintf("Completed quiz: %s. Score: %d/%d", input.Exam, score, len(input.Responses)))

	newAchievements := achievements.CheckAndAward(qc.DB, userID, nil)

	var updatedUser models.User
	qc.DB.Preload("Achievements").First(&updatedUser, userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attempt":         attempt,
		"newAchievements": newAchievements,
		"user":            updatedUser,
	})
}

// History returns the user's last 50 attempts, most recent first.
func (qc *QuizController) History(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var history []models.Attempt
	if err := qc.DB.Preload("Responses").
		Where("user_id = ?", userID).
		Order("date desc").Limit(50).
		Find(&history).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(history)
}

// Report returns the user's aggregate performance stats.
func (qc *QuizController) Report(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := qc.DB.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var attempts []models.Attempt
	qc.DB.Where("user_id = ?", userID).Order("date desc").Find(&attempts)

	avgScore, highestScore := attemptStats(attempts)

	return c.JSON(fiber.Map{
		"student": fiber.Map{
			"name":         user.Name,
			"email":        user.Email,
			"title":        user.Title,
			"achievements": user.Achievements,
		},
		"attempts": attempts,
		"stats": fiber.Map{
			"totalAttempts": len(attempts),
			"averageScore":  avgScore,
			"highestScore":  highestScore,
		},
	})
}

func attemptStats(attempts []models.Attempt) (avgScore, highestScore float64) {
	if len(attempts) == 0 {
		return 0, 0
	}
	sum := 0.0
	for i := range attempts {
		p := attempts[i].Percentage() * 100
		sum += p
		if p > highestScore {
			highestScore = p
		}
	}
	return sum / float64(len(attempts)), highestScore
}
