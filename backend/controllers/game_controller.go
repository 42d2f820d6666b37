package controllers

import (
	"encoding/json"
	"fmt"

	"medicgrow/backend/achievements"
	"medicgrow/backend/ai"
	"medicgrow/backend/config"
	"medicgrow/backend/models"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const simulationSystemPrompt = `You are a professional nursing clinical educator. You are running a 5-step story-based simulation for a nursing student.
Your goal is to present a realistic clinical scenario where the student must make critical decisions over exactly 5 steps.

Guidelines:
1. The simulation MUST consist of exactly 5 steps.
2. In each step, the patient's vital signs and condition MUST change significantly based on the student's previous action (improving for correct actions, worsening for incorrect ones).
3. Provide 4 realistic multiple-choice options for the next action in each step.
4. One option is the "best" practice, others are less ideal or dangerous.
5. Provide detailed clinical feedback on the previous choice at each step.
6. Track the current step number (1 to 5).
7. On Step 5, set "gameOver" to true and provide a final summary of the patient's outcome based on all previous choices.
8. The patient's vital signs must reflect their current status accurately (e.g., tachycardia/hypotension if worsening).
9. The "conditionChange" field should be one of: "Improved", "Worsened", "Stabilized", or "N/A" (for step 1).

You MUST respond in JSON format with the following structure:
{
  "step": 1,
  "scenario": "Detailed description of the current situation",
  "options": [
    {"id": 1, "text": "Action 1 description"},
    {"id": 2, "text": "Action 2 description"},
    {"id": 3, "text": "Action 3 description"},
    {"id": 4, "text": "Action 4 description"}
  ],
  "patientStatus": "Current status (Stable, Guarded, Critical, Improving, Deteriorating)",
  "conditionChange": "Improved/Worsened/Stabilized",
  "feedback": "Clinical feedback on the previous choice",
  "gameOver": false,
  "success": false,
  "vitalSigns": {
    "bp": "120/80",
    "hr": "80",
    "rr": "18",
    "temp": "98.6",
    "spo2": "98%"
  }
}`

// GameStep is one turn of the clinical simulation as returned by the
// model.
type GameStep struct {
	Step            int          `json:"step"`
	Scenario        string       `json:"scenario"`
	Options         []GameOption `json:"options"`
	PatientStatus   string       `json:"patientStatus"`
	ConditionChange string       `json:"conditionChange"`
	Feedback        string       `json:"feedback"`
	GameOver        bool         `json:"gameOver"`
	Success         bool         `json:"success"`
	VitalSigns      *GameVitals  `json:"vitalSigns"`
}

type GameOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type GameVitals struct {
	BP   string `json:"bp"`
	HR   string `json:"hr"`
	RR   string `json:"rr"`
	Temp string `json:"temp"`
	SpO2 string `json:"spo2"`
}

type GameController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Gemini *ai.GeminiClient
}

func NewGameController(db *gorm.DB, cfg *config.Config, gemini *ai.GeminiClient) *GameController {
	return &GameController{DB: db, Cfg: cfg, Gemini: gemini}
}

// Start opens a new 5-step simulation with a random clinical scenario.
func (gc *GameController) Start(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	prompt := simulationSystemPrompt + "\n\nStart Step 1 of a new nursing clinical scenario. Choose a random but common nursing situation (e.g., post-op complication, chest pain, respiratory distress, etc.)."

	raw, err := gc.Gemini.Generate(c.Context(), prompt, ai.GenerateOptions{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start the game. All API keys may have exceeded their quota.",
		})
	}

	var step GameStep
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start the game. All API keys may have exceeded their quota.",
		})
	}

	scenario := step.Scenario
	if len(scenario) > 100 {
		scenario = scenario[:100]
	}
	utils.LogActivity(gc.DB, userID, models.ActionGameStarted,
		fmt.Sprintf("Started new nursing simulation: %s...", scenario))

	return c.JSON(step)
}

// Action advances the simulation by one step. When the model signals
// game over it also updates the player's counters and re-checks
// achievements with the final game metadata.
func (gc *GameController) Action(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type ActionInput struct {
		History    []GameStep `json:"history"`
		LastAction string     `json:"lastAction"`
	}

	var input ActionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	currentStep := len(input.History) + 1
	historyJSON, _ := json.Marshal(input.History)

	prompt := fmt.Sprintf(`%s

Game History:
%s

Current Step: %d
The student just chose: %s

Based on this choice and previous history, continue the story for Step %d.
If this is Step 5, conclude the case and set gameOver to true.
Provide specific feedback on how the last action affected the patient's vitals and condition.`,
		simulationSystemPrompt, string(historyJSON), currentStep, input.LastAction, currentStep)

	raw, err := gc.Gemini.Generate(c.Context(), prompt, ai.GenerateOptions{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process game action",
		})
	}

	var step GameStep
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process game action",
		})
	}

	if !step.GameOver {
		stepNumber := step.Step
		if stepNumber == 0 {
			stepNumber = currentStep
		}
		utils.LogActivity(gc.DB, userID, models.ActionGameStep,
			fmt.Sprintf("Completed step %d. Choice: %s. Patient Status: %s", stepNumber, input.LastAction, step.PatientStatus))
		return c.JSON(step)
	}

	stepNumber := step.Step
	if stepNumber == 0 {
		stepNumber = currentStep
	}
	utils.LogActivity(gc.DB, userID, models.ActionGameCompleted,
		fmt.Sprintf("Completed nursing simulation. Final Status: %s. Success: %t. Steps: %d", step.PatientStatus, step.Success, stepNumber))

	var user models.User
	if err := gc.DB.First(&user, userID).Error; err != nil {
		return c.JSON(step)
	}

	user.StoryGamesCompleted++
	if step.Success {
		user.SuccessfulSimulations++
		if step.PatientStatus == "Critical" || historyHasStatus(input.History, "Critical") {
			user.CriticalSimsResolved++
		}
	} else {
		user.FailedSimulations++
	}
	gc.DB.Save(&user)

	metadata := &achievements.GameMetadata{
		GameSuccess:      step.Success,
		FinalStatus:      step.PatientStatus,
		ConditionChange:  step.ConditionChange,
		GameOver:         step.GameOver,
		AllStepsImproved: allImproved(input.History) && step.ConditionChange == "Improved",
		LastAction:       input.LastAction,
	}
	if len(input.History) > 0 {
		metadata.InitialStatus = input.History[0].PatientStatus
	}
	if step.VitalSigns != nil {
		metadata.Vitals = &achievements.Vitals{
			BP:   step.VitalSigns.BP,
			HR:   step.VitalSigns.HR,
			RR:   step.VitalSigns.RR,
			SpO2: step.VitalSigns.SpO2,
		}
	}

	newAchievements := achievements.CheckAndAward(gc.DB, userID, metadata)

	var updatedUser models.User
	gc.DB.Preload("Achievements").First(&updatedUser, userID)

	return c.JSON(fiber.Map{
		"step":            step.Step,
		"scenario":        step.Scenario,
		"options":         step.Options,
		"patientStatus":   step.PatientStatus,
		"conditionChange": step.ConditionChange,
		"feedback":        step.Feedback,
		"gameOver":        step.GameOver,
		"success":         step.Success,
		"vitalSigns":      step.VitalSigns,
		"newAchievements": newAchievements,
		"user":            updatedUser,
	})
}

func historyHasStatus(history []GameStep, status string) bool {
	for _, h := range history {
		if h.PatientStatus == status {
			return true
		}
	}
	return false
}

func allImproved(history []GameStep) bool {
	for _, h := range history {
		if h.ConditionChange != "Improved" {
			return false
		}
	}
	return true
}
