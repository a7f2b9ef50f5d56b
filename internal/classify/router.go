package classify

import (
	"strings"

	"github.com/navin5447/Edgesoul/internal/types"
)

// Route picks the reply strategy for a message. It is a pure function of its
// inputs; identical arguments always produce the same strategy.
//
// Distress routing (rules with negative emotion) outranks context routing:
// a practical question carrying strong negative affect gets emotional support
// first, while mild negative affect still gets factual help.
func Route(text string, result types.EmotionResult, context types.ContextTag) types.Strategy {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := len(strings.Fields(lower))
	negative := result.Primary.Negative()

	switch context {
	case types.ContextClarification:
		return types.StrategyCasualChat
	case types.ContextEmotionalLearning:
		return types.StrategyHybrid
	case types.ContextGratitude:
		return types.StrategyCasualChat
	case types.ContextGreeting:
		if words <= 5 {
			return types.StrategyCasualChat
		}
	case types.ContextCasualConversation:
		return types.StrategyCasualChat
	}

	learning := containsAny(lower, learningIntentPhrases)
	if result.Primary.Positive() && learning {
		return types.StrategyHybrid
	}
	if learning || containsAny(lower, knowledgeRequestPhrases) {
		return types.StrategyKnowledgeFocused
	}

	if negative && containsAny(lower, distressKeywords) {
		return types.StrategyEmotionalSupport
	}
	if negative && result.Confidence > 0.5 && context != types.ContextClarification {
		return types.StrategyEmotionalSupport
	}

	if context == types.ContextPracticalRequest || context == types.ContextQuestion {
		if result.Primary == types.EmotionAnger || result.Primary == types.EmotionFear {
			return types.StrategyHybrid
		}
		return types.StrategyKnowledgeFocused
	}

	return types.StrategyCasualChat
}

var knowledgeRequestPhrases = []string{
	"what is", "what are", "who is", "who was", "where is", "when did",
	"why does", "why is", "how does", "how do", "explain", "define",
	"tell me about", "difference between",
}

var distressKeywords = []string{
	"can't take", "cant take", "give up", "hopeless", "worthless",
	"no one understands", "nobody understands", "alone", "lonely",
	"crying", "cry", "hurt so much", "breaking down", "falling apart",
	"kill", "die", "end it", "suicid", "can't go on", "cant go on",
	"won't fix", "wont fix", "so frustrated", "hate my life",
}
