package reply

import (
	"context"
	"strings"

	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/types"
)

// Fragments that only make sense as a follow-up to an earlier turn; they get
// prior conversation context prepended before generation.
var incompleteQuestionPatterns = []string{
	"give what", "what to", "include what", "need what", "which one",
	"say what", "how about",
}

// Practical application/career questions that deserve a longer, structured
// answer.
var structuredAnswerKeywords = []string{
	"application", "resume", "cv", "interview", "job", "career",
	"why did you choose", "why choose", "form", "fill", "include on",
	"what to write", "how to answer", "what should i say",
}

var codingQuestionKeywords = []string{
	"code", "program", "python", "javascript", "java", "function",
	"write a", "create a", "make a", "build a", "fibonacci", "algorithm",
	"script", "class", "method", "loop", "array", "list",
}

var jokeRequestKeywords = []string{"joke", "funny", "humor"}

var aiDisclaimers = []string{
	"As an AI language model",
	"I'm an AI assistant",
	"I am a highly advanced artificial intelligence",
	"As an artificial intelligence",
}

// Generated jokes containing these are discarded for the curated list.
var badJokeIndicators = []string{
	"user question:", "assistant answer:", "america", "marrying",
	"woman", "ass", "tizzy", "insulting", "cultural significance",
}

// handleKnowledge answers factual questions: parameter selection by request
// type, disclaimer stripping, joke validation, and an emotional-awareness
// prefix for confident negative emotions.
func (e *Engine) handleKnowledge(ctx context.Context, text string, result types.EmotionResult, contextSummary string) types.HandlerResult {
	lower := strings.ToLower(text)

	// Fragments like "include what?" only resolve against recent turns.
	questionContext := ""
	if containsAnyOf(lower, incompleteQuestionPatterns) {
		questionContext = contextSummary
	}

	isJoke := containsAnyOf(lower, jokeRequestKeywords)
	isCoding := containsAnyOf(lower, codingQuestionKeywords)
	needsStructure := containsAnyOf(lower, structuredAnswerKeywords)

	temperature, maxTokens := 0.2, 600
	switch {
	case isJoke:
		temperature, maxTokens = 0.8, 300
	case isCoding:
		temperature, maxTokens = 0.3, 2000
	case needsStructure:
		temperature, maxTokens = 0.3, 800
	}

	resp := e.knowledge.Ask(ctx, knowledge.Request{
		Question:    text,
		Context:     questionContext,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	answer := stripDisclaimers(resp.Text)

	if isJoke {
		if badJoke(answer) {
			answer = "Here's a joke for you:\n\n" + knowledge.RandomJoke(e.rng)
			return types.HandlerResult{
				Text:   answer,
				Source: types.StrategyKnowledgeFocused,
				Model:  "fallback_jokes",
			}
		}
	} else if result.Confidence > 0.7 {
		if prefix, ok := emotionalAwarenessPrefixes[result.Primary]; ok {
			answer = prefix + answer
		}
	}

	return types.HandlerResult{
		Text:   answer,
		Source: types.StrategyKnowledgeFocused,
		Model:  resp.ModelName,
	}
}

// stripDisclaimers drops a leading AI self-identification sentence.
func stripDisclaimers(text string) string {
	for _, disclaimer := range aiDisclaimers {
		if strings.Contains(text, disclaimer) {
			if _, rest, found := strings.Cut(text, "."); found {
				return strings.TrimSpace(rest)
			}
		}
	}
	return text
}

func badJoke(answer string) bool {
	lower := strings.ToLower(answer)
	return containsAnyOf(lower, badJokeIndicators) || len(answer) > 300
}

func containsAnyOf(text string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
