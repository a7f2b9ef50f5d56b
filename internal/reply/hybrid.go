package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/types"
)

// Emotional framing stripped off before the topic is sent for generation.
var emotionalFramingPrefixes = []string{
	"in this happy mode", "in this mood", "feeling good", "excited to",
	"i'm happy", "im happy",
}

var vagueTopics = map[string]bool{
	"":              true,
	"something":     true,
	"something new": true,
	"new things":    true,
	"anything":      true,
}

// extractLearningTopic reduces an emotional learning request to just the
// topic ("I'm so happy, teach me about space" -> "about space").
func extractLearningTopic(text string) string {
	topic := strings.ToLower(strings.TrimSpace(text))
	for _, prefix := range emotionalFramingPrefixes {
		topic = strings.TrimSpace(strings.ReplaceAll(topic, prefix, ""))
	}
	if _, rest, found := strings.Cut(topic, "want to learn"); found {
		topic = strings.TrimSpace(rest)
	}
	if _, rest, found := strings.Cut(topic, "teach me"); found {
		topic = strings.TrimSpace(rest)
	}
	return topic
}

// handleHybrid serves messages carrying both emotion and a learning request:
// acknowledge the feeling, then answer the question. When generation fails it
// degrades to pure emotional support.
func (e *Engine) handleHybrid(ctx context.Context, text string, result types.EmotionResult, profile types.UserProfile) types.HandlerResult {
	topic := extractLearningTopic(text)

	if len([]rune(topic)) < 10 || vagueTopics[topic] {
		menu := joyfulClarificationMenu
		if result.Primary != types.EmotionJoy {
			menu = fmt.Sprintf("I can sense you're feeling %s and want to learn something. That's wonderful! 💙\n\nWhat topic would you like to explore? I can help with:\n- Technology & Programming\n- Science & Nature\n- Arts & Culture\n- Skills & Hobbies\n- Or anything else!\n\nWhat catches your interest?", result.Primary)
		}
		return types.HandlerResult{
			Text:               menu,
			Source:             types.StrategyHybrid,
			Model:              "emotion_aware_clarification",
			EmotionAddressed:   result.Primary,
			NeedsClarification: true,
		}
	}

	resp := e.knowledge.Ask(ctx, knowledge.Request{
		Question:    topic,
		Emotion:     string(result.Primary),
		Temperature: 0.7,
		MaxTokens:   400,
	})
	if resp.ModelName == "fallback" {
		return e.handleEmotionalSupport(ctx, text, result, profile)
	}

	answer := hybridOpeners[result.Primary] + resp.Text
	if result.Primary == types.EmotionJoy {
		answer += "\n\nKeep that positive energy going - it's the best way to learn! ✨"
	}

	return types.HandlerResult{
		Text:             answer,
		Source:           types.StrategyHybrid,
		Model:            resp.ModelName,
		EmotionAddressed: result.Primary,
	}
}
