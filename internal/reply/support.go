package reply

import (
	"context"
	"strings"

	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/types"
)

// Words that push a message toward the high-intensity bucket. Stems are
// intentional ("depress" matches depressed/depressing).
var intensifierWords = []string{
	"very", "extremely", "really", "so", "deeply", "terribly", "completely",
	"depress", "devastated", "horrible", "terrible", "awful", "worst",
	"unbearable", "can't take", "breaking down", "crying", "tears",
}

// Phrases indicating acute distress; any single hit forces high intensity.
var distressPhrases = []string{
	"no one understands", "nobody cares", "all alone", "want to give up",
	"can't do this", "too much", "unfair", "wrongly", "blamed for",
	"not my fault", "innocent", "didn't do", "scolded", "punished",
}

// boostIntensity raises the detected intensity when the wording itself
// signals more distress than the classifier scored.
func boostIntensity(text string, intensity float64) float64 {
	lower := strings.ToLower(text)

	intensifiers := 0
	for _, word := range intensifierWords {
		if strings.Contains(lower, word) {
			intensifiers++
		}
	}
	distress := 0
	for _, phrase := range distressPhrases {
		if strings.Contains(lower, phrase) {
			distress++
		}
	}

	switch {
	case intensifiers >= 2 || distress >= 1:
		if intensity < 75 {
			intensity = 75
		}
	case intensifiers == 1 || len(strings.Fields(text)) > 15:
		if intensity < 50 {
			intensity = 50
		}
	}
	return intensity
}

func intensityBucket(intensity float64) string {
	switch {
	case intensity > 75:
		return bucketHigh
	case intensity > 40:
		return bucketMedium
	default:
		return bucketLow
	}
}

// handleEmotionalSupport generates an empathetic reply sized to the user's
// empathy level, falling back to static templates when generation fails.
func (e *Engine) handleEmotionalSupport(ctx context.Context, text string, result types.EmotionResult, profile types.UserProfile) types.HandlerResult {
	intensity := boostIntensity(text, result.Intensity)
	bucket := intensityBucket(intensity)

	// Empathy level sizes the reply; the tone preset can override it.
	style := toneStyle(profile.TonePreset)
	maxWords := 40
	switch {
	case profile.Empathy < 30:
		maxWords = 20
	case profile.Empathy > 70:
		maxWords = 60
	}
	if profile.TonePreset != types.ToneBalanced {
		maxWords = style.MaxWordsEmotional
	}

	// The curated answer table is bypassed here: a distressed message that
	// happens to match a how-to entry still deserves empathy, not a list.
	resp := e.knowledge.Ask(ctx, knowledge.Request{
		Question:    text,
		Context:     e.lastTurnContext(ctx, profile.UserID, 2, 80),
		Emotion:     string(result.Primary),
		Tone:        toneHint(profile),
		Temperature: 0.7,
		MaxTokens:   maxWords,
		SkipInstant: true,
	})

	if resp.ModelName == "fallback" {
		return types.HandlerResult{
			Text:             supportTemplate(e.rng, result.Primary, bucket),
			Source:           types.StrategyEmotionalSupport,
			Model:            "template_fallback",
			EmotionAddressed: result.Primary,
			IntensityBucket:  bucket,
		}
	}

	return types.HandlerResult{
		Text:             resp.Text,
		Source:           types.StrategyEmotionalSupport,
		Model:            resp.ModelName,
		EmotionAddressed: result.Primary,
		IntensityBucket:  bucket,
	}
}
