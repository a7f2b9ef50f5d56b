package reply

import (
	"context"
	"strings"

	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/types"
)

var simpleGreetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "sup": true, "yo": true,
}

var learningRequestPhrases = []string{
	"want to learn", "learn something", "teach me", "i want to",
	"what should i learn",
}

// Distress wording that escapes casual chat entirely.
var casualDistressWords = []string{
	"depress", "sad", "hurt", "scared", "worried", "anxious", "crying",
	"devastated", "horrible", "terrible", "awful", "lonely", "alone",
	"hopeless", "helpless", "worthless", "furious", "frustrated",
}

// handleCasual serves small talk: instant answers and template fast paths
// first, distress re-routing second, short generation last.
func (e *Engine) handleCasual(ctx context.Context, text string, result types.EmotionResult, profile types.UserProfile, contextSummary string) types.HandlerResult {
	lower := strings.ToLower(strings.TrimSpace(text))
	style := toneStyle(profile.TonePreset)

	// Curated answers catch phrases like "i feel lonely" before any
	// template does.
	if answer, ok := knowledge.InstantAnswer(lower); ok {
		return types.HandlerResult{
			Text:   answer,
			Source: types.StrategyCasualChat,
			Model:  "instant_knowledge_base",
		}
	}

	if simpleGreetings[lower] && len(strings.Fields(text)) == 1 {
		return types.HandlerResult{
			Text:   style.Greetings[e.rng.Intn(len(style.Greetings))],
			Source: types.StrategyCasualChat,
			Model:  "instant_template",
		}
	}

	if containsAnyOf(lower, learningRequestPhrases) &&
		!strings.Contains(lower, "code") && !strings.Contains(lower, "program") {
		return types.HandlerResult{
			Text:   learningMenus[e.rng.Intn(len(learningMenus))],
			Source: types.StrategyCasualChat,
			Model:  "instant_learning_template",
		}
	}

	// Distress never stays in casual chat. Clarifications are exempt: "I'm
	// not sad" mentions sadness without expressing it.
	if result.Context != types.ContextClarification {
		if containsAnyOf(lower, casualDistressWords) {
			return e.handleEmotionalSupport(ctx, text, result, profile)
		}
		if result.Primary.Negative() && result.Confidence > 0.6 {
			return e.handleEmotionalSupport(ctx, text, result, profile)
		}
	}

	emotionHint := ""
	if result.Primary != types.EmotionNeutral && result.Confidence > 0.5 {
		emotionHint = string(result.Primary)
	}

	resp := e.knowledge.Ask(ctx, knowledge.Request{
		Question:    text,
		Context:     e.lastTurnContext(ctx, profile.UserID, 2, 100),
		Emotion:     emotionHint,
		Tone:        toneHint(profile),
		Temperature: 0.9,
		MaxTokens:   style.MaxWordsCasual,
	})
	if resp.ModelName == "fallback" {
		return types.HandlerResult{
			Text:   casualFallback,
			Source: types.StrategyCasualChat,
			Model:  "fallback",
		}
	}

	return types.HandlerResult{
		Text:   resp.Text,
		Source: types.StrategyCasualChat,
		Model:  resp.ModelName,
	}
}
