// README: Gemini-backed recognizer producing scored intents and entity spans.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiRecognizer implements Recognizer using Google's Gemini models.
type GeminiRecognizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiRecognizer initializes a new Gemini client. apiKey should be
// provided from configuration.
func NewGeminiRecognizer(ctx context.Context, apiKey string) (*GeminiRecognizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps per-turn latency low; recognition is a cheap extraction task.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.0)

	return &GeminiRecognizer{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (g *GeminiRecognizer) Close() {
	g.client.Close()
}

func (g *GeminiRecognizer) IsConfigured() bool { return g != nil && g.client != nil }

// Recognize queries the model for the structured recognition of one utterance.
func (g *GeminiRecognizer) Recognize(ctx context.Context, utterance string) (*Result, error) {
	prompt := fmt.Sprintf("%s\n\nUtterance: %s", recognitionPrompt, utterance)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	cleanJSON := cleanJSONString(responseText.String())

	var result Result
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recognition JSON: %w. Raw: %s", err, cleanJSON)
	}

	// The snapshot always carries the verbatim utterance, whatever the model echoed.
	result.Text = utterance
	return &result, nil
}

// cleanJSONString strips markdown code fences the model occasionally emits
// even in JSON mode.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

const recognitionPrompt = `Role: You are the natural-language understanding service of a flight-booking assistant.
Analyze the utterance and return ONLY a JSON object with this exact shape:

{
  "intents": [{"name": "Book" | "Cancel" | "None", "score": 0.0-1.0}],
  "entities": {
    "or_city":          [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "dst_city":         [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "str_date":         [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "end_date":         [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "budget":           [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "geographyV2_city": [{"score": 0.0-1.0, "start": N, "end": N, "text": "..."}],
    "datetime":         [{"score": 0.0-1.0, "start": N, "end": N, "timex": ["..."]}],
    "number":           [{"score": 0.0-1.0, "start": N, "end": N, "value": N}]
  }
}

RULES:
1. "start"/"end" are character offsets of the span in the utterance.
2. "or_city" is the departure city span, "dst_city" the arrival city span.
   Every city span must ALSO appear under "geographyV2_city".
3. "str_date" is the outbound date span, "end_date" the return date span.
   Every date span must ALSO appear under "datetime" with its TIMEX form
   (e.g. "2022-10-12", "XXXX-12-02" when the year is not stated).
4. Every numeric amount must ALSO appear under "number" with its value.
5. Omit a taxonomy entirely when nothing matches. Do not invent entities.
6. Rank intents by confidence. Use "Book" only for flight-booking requests,
   "Cancel" for abandon requests, "None" otherwise.`
