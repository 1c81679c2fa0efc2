package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"training-portal/internal/models"
)

// Generator produces quiz questions for a module that has no fixed quiz.
// Any failure or empty result degrades to the static fallback pool; it is
// never surfaced to the learner.
type Generator interface {
	Generate(m models.Module) ([]models.Question, error)
}

// HTTPGenerator calls an external question-generation endpoint.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGenerator(endpoint, apiKey string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (g *HTTPGenerator) Generate(m models.Module) ([]models.Question, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"moduleId":    m.ID,
		"title":       m.Title,
		"section":     m.Section,
		"description": m.Description,
		"tags":        []string(m.Tags),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var body struct {
		Questions []models.Question `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	valid := make([]models.Question, 0, len(body.Questions))
	for _, q := range body.Questions {
		if q.Valid() {
			valid = append(valid, q)
		}
	}
	return valid, nil
}

// fallbackPool is the fixed question set used when a module has no quiz
// and generation is unavailable or fails.
var fallbackPool = []models.Question{
	{
		ID:   "fb-1",
		Text: "What is the first step when you discover a fire in the ward?",
		Options: []string{
			"Fight the fire alone",
			"Rescue anyone in immediate danger",
			"Collect your belongings",
			"Wait for instructions",
		},
		CorrectAnswerIndex: 1,
	},
	{
		ID:   "fb-2",
		Text: "Before any patient contact you should:",
		Options: []string{
			"Perform hand hygiene",
			"Check your phone",
			"Put on a lab coat",
			"Sign the chart",
		},
		CorrectAnswerIndex: 0,
	},
	{
		ID:   "fb-3",
		Text: "Patient identifiers must be verified using at least:",
		Options: []string{
			"The room number",
			"One identifier",
			"Two identifiers",
			"The bed label",
		},
		CorrectAnswerIndex: 2,
	},
}

// FallbackQuestions returns a copy of the static pool.
func FallbackQuestions() []models.Question {
	out := make([]models.Question, len(fallbackPool))
	copy(out, fallbackPool)
	return out
}

// QuestionsFor picks the question source for a module: its fixed quiz when
// it has scoreable questions, then the generator, then the fallback pool.
// The result is always non-empty.
func QuestionsFor(m models.Module, gen Generator) []models.Question {
	if fixed := m.ValidQuestions(); len(fixed) > 0 {
		return fixed
	}

	if gen != nil {
		generated, err := gen.Generate(m)
		if err != nil {
			log.Printf("Question generation failed for module %s, using fallback: %v", m.ID, err)
		} else if len(generated) > 0 {
			return generated
		}
	}

	return FallbackQuestions()
}
