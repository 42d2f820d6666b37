package ai

import (
	"fmt"
	"net/url"
)

// PencilDrawingURL builds a pollinations.ai URL for an educational
// pencil-drawn illustration. The service renders the image directly at
// this URL, no API call needed.
func PencilDrawingURL(prompt string) string {
	enhanced := fmt.Sprintf(`A clear, educational, and labelled pencil-drawn illustration of: %s.
Style: Simple, clean, clinical pencil sketch on white background.
Details: High contrast, professional medical illustration, no colors,
highly detailed for nursing students to understand medical concepts clearly.`, prompt)

	return "https://image.pollinations.ai/prompt/" + url.QueryEscape(enhanced) + "?nologo=true&enhance=false"
}
