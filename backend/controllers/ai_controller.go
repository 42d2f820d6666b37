package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"medicgrow/backend/achievements"
	"medicgrow/backend/ai"
	"medicgrow/backend/config"
	"medicgrow/backend/models"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const chatMaxOutputTokens = 1000

var imageTagPattern = regexp.MustCompile(`\[GENERATE_IMAGE: (.*?)\]`)

const tutorInstructionTemplate = `You are a professional medical assistant and educator for healthcare students.
Your goal is to provide accurate, helpful, and encouraging information about medical topics, healthcare practices, and exam preparation.
Always maintain a professional tone and emphasize patient safety and evidence-based practice.

Student Information:
- Name: %s
- Current Focus: Medicgrow Exam Preparation
- Recent Exam Performance:
%s

Rules for your responses:
1. Keep the language simple, short, clear, and encouraging.
2. Use small paragraphs (2-3 sentences max) to avoid large blocks of text.
3. Use **Text** for bolding important medical terms or key points.
4. Use ### for next line spacing between different sections or key points.
5. Use bullet points or numbered lists for better readability.
6. DO NOT use table formats.
7. Show only what the student asked for to ensure simple understanding.
8. ONLY show or discuss the "Recent Exam Performance" if the student explicitly asks about their results, performance, or scores.
9. If you believe a visual representation (like a diagram or a clinical drawing) would help the student understand a medical concept better, include a tag at the end exactly like this: [GENERATE_IMAGE: descriptive prompt for the drawing].

When the student asks about their results or performance:
1. Provide a short, easy-to-understand summary of the performance data provided above.
2. Highlight their strengths and areas for improvement.
3. If they haven't taken any exams, encourage them to start a practice test.

Personalize your responses using the student's name. If a question is outside the medical scope, politely redirect them.`

type AIController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Gemini *ai.GeminiClient
}

func NewAIController(db *gorm.DB, cfg *config.Config, gemini *ai.GeminiClient) *AIController {
	return &AIController{DB: db, Cfg: cfg, Gemini: gemini}
}

// Chat handles one tutor turn: replay the recent history window, send
// the new message through the key-rotation wrapper, persist both sides
// of the exchange and re-check achievements.
func (aic *AIController) Chat(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, aic.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type ChatInput struct {
		Message string `json:"message"`
	}

	var input ChatInput
	if err := c.BodyParser(&input); err != nil || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	var user models.User
	if err := aic.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var recentAttempts []models.Attempt
	aic.DB.Where("user_id = ?", userID).Order("date desc").Limit(5).Find(&recentAttempts)

	performanceSummary := "No exams taken yet."
	if len(recentAttempts) > 0 {
		var lines []string
		for _, a := range recentAttempts {
			lines = append(lines, fmt.Sprintf("- Exam: %s, Score: %d/%d, Date: %s",
				a.Exam, a.Score, a.TotalQuestions, a.Date.Format("02/01/2006")))
		}
		performanceSummary = strings.Join(lines, "\n")
	}

	chat, err := aic.loadOrCreateChat(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load chat history",
		})
	}

	// Replay only the most recent window even though more is stored.
	history := chat.Messages
	if len(history) > models.ChatHistoryWindow {
		history = history[len(history)-models.ChatHistoryWindow:]
	}
	providerHistory := make([]ai.ChatMessage, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		providerHistory = append(providerHistory, ai.ChatMessage{Role: role, Text: m.Content})
	}

	systemInstruction := fmt.Sprintf(tutorInstructionTemplate, user.Name, performanceSummary)
	message := fmt.Sprintf("System Instruction: %s\n\nUser Message: %s", systemInstruction, input.Message)

	reply, err := aic.Gemini.Chat(c.Context(), providerHistory, message, ai.GenerateOptions{
		MaxOutputTokens: chatMaxOutputTokens,
	})
	if err != nil {
		var ge *ai.GeminiError
		if errors.As(err, &ge) && ge.Status == http.StatusForbidden {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "AI service is currently unavailable due to API key suspension. Please check your GEMINI_API_KEY configuration.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get response from AI assistant",
		})
	}

	// The model may ask for an illustration with a [GENERATE_IMAGE: …]
	// tag; build the image URL and strip the tag either way.
	imageURL := ""
	if match := imageTagPattern.FindStringSubmatch(reply); match != nil {
		imageURL = ai.PencilDrawingURL(match[1])
		reply = strings.TrimSpace(imageTagPattern.ReplaceAllString(reply, ""))
	}

	aic.DB.Create(&models.ChatMessage{ChatID: chat.ID, Role: "user", Content: input.Message})
	aic.DB.Create(&models.ChatMessage{ChatID: chat.ID, Role: "assistant", Content: reply, ImageURL: imageURL})
	aic.trimChat(chat.ID)

	aic.DB.Model(&user).Update("chatbot_usage_count", gorm.Expr("chatbot_usage_count + 1"))

	newAchievements := achievements.CheckAndAward(aic.DB, userID, nil)

	var updatedUser models.User
	aic.DB.Preload("Achievements").First(&updatedUser, userID)

	return c.JSON(fiber.Map{
		"reply":           reply,
		"imageUrl":        imageURL,
		"newAchievements": newAchievements,
		"user":            updatedUser,
	})
}

// History returns the stored chat transcript.
func (aic *AIController) History(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, aic.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var chat models.Chat
	if err := aic.DB.Preload("Messages").Where("user_id = ?", userID).First(&chat).Error; err != nil {
		return c.JSON([]models.ChatMessage{})
	}

	return c.JSON(chat.Messages)
}

// CareerInsight summarizes one attempt's per-topic performance and
// asks the model for a short career recommendation.
func (aic *AIController) CareerInsight(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, aic.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type InsightInput struct {
		AttemptID uint `json:"attemptId"`
	}

	var input InsightInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var attempt models.Attempt
	if err := aic.DB.Preload("Responses").First(&attempt, input.AttemptID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	type topicStats struct{ correct, total int }
	performance := make(map[string]*topicStats)
	for _, resp := range attempt.Responses {
		topic := "General"
		if resp.QuestionID != nil {
			var question models.Question
			if err := aic.DB.First(&question, *resp.QuestionID).Error; err == nil {
				topic = question.Topic
			}
		}
		if performance[topic] == nil {
			performance[topic] = &topicStats{}
		}
		performance[topic].total++
		if resp.IsCorrect {
			performance[topic].correct++
		}
	}

	var parts []string
	for topic, stats := range performance {
		parts = append(parts, fmt.Sprintf("%s: %d/%d", topic, stats.correct, stats.total))
	}

	prompt := fmt.Sprintf(`As an expert medical career counselor, analyze this student's exam performance:
Exam: %s
Total Score: %d/%d
Topic-wise Performance: %s

Provide a professional AI Career Insight (max 2-3 sentences).
1. Identify a potential healthcare specialization they might excel in based on their strong topics.
2. Provide one specific, actionable advice for their career or study path.
Keep the tone encouraging, professional, and clear. Do not use any markdown formatting like bold or tables, just plain text.`,
		attempt.Exam, attempt.Score, attempt.TotalQuestions, strings.Join(parts, ", "))

	insight, err := aic.Gemini.Generate(c.Context(), prompt, ai.GenerateOptions{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate career insight",
		})
	}

	return c.JSON(fiber.Map{
		"insight": insight,
	})
}

func (aic *AIController) loadOrCreateChat(userID uint) (*models.Chat, error) {
	var chat models.Chat
	err := aic.DB.Preload("Messages").Where("user_id = ?", userID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		chat = models.Chat{UserID: userID}
		if err := aic.DB.Create(&chat).Error; err != nil {
			return nil, err
		}
		return &chat, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// trimChat drops the oldest messages beyond the storage cap.
func (aic *AIController) trimChat(chatID uint) {
	var ids []uint
	aic.DB.Model(&models.ChatMessage{}).
		Where("chat_id = ?", chatID).
		Order("id desc").Limit(models.MaxChatMessages).
		Pluck("id", &ids)
	if len(ids) == models.MaxChatMessages {
		aic.DB.Where("chat_id = ? AND id < ?", chatID, ids[len(ids)-1]).
			Delete(&models.ChatMessage{})
	}
}
