// Package emotion classifies and corrects the emotional reading of a message.
package emotion

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/navin5447/Edgesoul/internal/types"
)

// Classifier maps text to an emotion label distribution. Implementations may
// fail; callers degrade to a neutral detection.
type Classifier interface {
	Detect(ctx context.Context, text string) (types.Detection, error)
}

// LLMClassifier asks a language model for the emotion label.
type LLMClassifier struct {
	model model.LLM
}

// NewLLMClassifier returns an LLM-backed classifier.
func NewLLMClassifier(m model.LLM) *LLMClassifier {
	return &LLMClassifier{model: m}
}

const classifierSystemPrompt = `You are an emotion classifier. Reply with exactly one of these labels and nothing else: joy, sadness, anger, fear, surprise, love, neutral.`

// Detect returns the emotion label distribution for text.
func (c *LLMClassifier) Detect(ctx context.Context, text string) (types.Detection, error) {
	if c == nil || c.model == nil {
		return types.NeutralDetection(), fmt.Errorf("emotion classifier not configured")
	}
	if strings.TrimSpace(text) == "" {
		return types.NeutralDetection(), nil
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(classifierSystemPrompt, "system"),
			genai.NewContentFromText(text, "user"),
		},
	}

	seq := c.model.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return types.NeutralDetection(), err
	}

	label := types.EmotionLabel(extractLabel(resp))
	if !label.Valid() {
		label = types.EmotionNeutral
	}

	// The model returns a single label; build a peaked distribution around it
	// so downstream correction rules have secondary mass to work with.
	return peakedDetection(label), nil
}

func extractLabel(resp *model.LLMResponse) string {
	if resp == nil || resp.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.ToLower(strings.TrimSpace(sb.String()))
}

func peakedDetection(label types.EmotionLabel) types.Detection {
	const peak = 0.82
	dist := make(map[types.EmotionLabel]float64, len(types.AllEmotions))
	rest := (1 - peak) / float64(len(types.AllEmotions)-1)
	for _, l := range types.AllEmotions {
		if l == label {
			dist[l] = peak
		} else {
			dist[l] = rest
		}
	}
	return types.Detection{Primary: label, Confidence: peak, Distribution: dist}
}
