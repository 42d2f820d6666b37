package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultMistralBaseURL = "https://api.mistral.ai"

// fallbackTopics is served when the syllabus call fails, so a quiz can
// always start.
var fallbackTopics = []string{
	"Anatomy and Physiology", "Pharmacology", "Medical-Surgical Nursing",
	"Pediatric Nursing", "Obstetric and Gynecological Nursing",
	"Psychiatric Nursing", "Community Health Nursing", "Nutrition",
	"Fundamentals of Nursing", "Microbiology",
}

// MistralClient generates syllabi and exam questions through the
// Mistral chat-completions API in JSON mode.
type MistralClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewMistralClient(apiKey, model string) *MistralClient {
	return &MistralClient{
		apiKey:     apiKey,
		baseURL:    defaultMistralBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralRequest struct {
	Model          string           `json:"model"`
	Messages       []mistralMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type mistralResponse struct {
	Choices []struct {
		Message mistralMessage `json:"message"`
	} `json:"choices"`
}

func (m *MistralClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := mistralRequest{
		Model:    m.model,
		Messages: []mistralMessage{{Role: "user", Content: prompt}},
	}
	reqBody.ResponseFormat.Type = "json_object"

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral: %d %s", resp.StatusCode, string(body))
	}

	var parsed mistralResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("mistral: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Syllabus returns the core topic list for an exam. On any failure it
// falls back to a static nursing syllabus.
func (m *MistralClient) Syllabus(ctx context.Context, exam string) []string {
	prompt := fmt.Sprintf(`Provide a list of 10 core topics for the %s nursing exam.
Return the response as a JSON object with a "topics" field which is an array of strings.
Example: {"topics": ["Anatomy", "Pharmacology", "Medical-Surgical Nursing", "Pediatric Nursing", "Obstetric Nursing", "Psychiatric Nursing", "Community Health", "Nutrition", "Fundamentals of Nursing", "Microbiology"]}
Ensure the topics cover the entire syllabus.`, exam)

	result, err := m.generate(ctx, prompt)
	if err != nil {
		log.Printf("Syllabus generation error: %v", err)
		return fallbackTopics
	}

	var parsed struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil || len(parsed.Topics) == 0 {
		log.Printf("Invalid syllabus format from AI: %v", err)
		return fallbackTopics
	}
	return parsed.Topics
}

// GeneratedQuestion is one AI-produced multiple-choice question.
type GeneratedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	Topic       string   `json:"topic"`
	Exam        string   `json:"exam"`
}

// QuestionsForTopic generates count questions for one topic. Errors
// yield an empty slice so a concurrent fan-out over topics never fails
// as a whole.
func (m *MistralClient) QuestionsForTopic(ctx context.Context, topic, exam string, count int) []GeneratedQuestion {
	prompt := fmt.Sprintf(`Generate %d multiple-choice questions for the topic "%s" in the context of the %s nursing exam.
Return the response as a JSON object with a "questions" field which is an array of objects.
Each object MUST have:
- "question": string
- "options": array of exactly 4 strings
- "correct": number (0-3)
- "explanation": string
- "topic": "%s"
- "exam": "%s"`, count, topic, exam, topic, exam)

	result, err := m.generate(ctx, prompt)
	if err != nil {
		log.Printf("Question generation error for topic %s: %v", topic, err)
		return nil
	}

	var parsed struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		log.Printf("Question generation parse error for topic %s: %v", topic, err)
		return nil
	}
	return parsed.Questions
}
