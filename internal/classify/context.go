package classify

import (
	"strings"

	"github.com/navin5447/Edgesoul/internal/emotion"
	"github.com/navin5447/Edgesoul/internal/types"
)

// ContextClassifier assigns a single context tag to a message. Rules are an
// ordered list evaluated first-match so each rule stays independently
// testable.
type ContextClassifier struct {
	rules []contextRule
}

type contextRule struct {
	tag   types.ContextTag
	match func(lower string, words int) bool
}

// NewContextClassifier returns a ContextClassifier with the standard rule
// order. practicalRequest is checked before casualConversation so that
// "can you give code" never reads as chit-chat.
func NewContextClassifier() *ContextClassifier {
	return &ContextClassifier{rules: []contextRule{
		{types.ContextGratitude, matchGratitude},
		{types.ContextClarification, matchClarification},
		{types.ContextEmotionalLearning, matchEmotionalLearning},
		{types.ContextGreeting, matchGreeting},
		{types.ContextPracticalRequest, matchPracticalRequest},
		{types.ContextCasualConversation, matchCasualConversation},
		{types.ContextQuestion, matchQuestion},
	}}
}

// Classify returns the context tag for text, defaulting to
// emotionalExpression when no rule matches.
func (c *ContextClassifier) Classify(text string) types.ContextTag {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := len(strings.Fields(lower))
	for _, rule := range c.rules {
		if rule.match(lower, words) {
			return rule.tag
		}
	}
	return types.ContextEmotionalExpression
}

var gratitudeKeywords = []string{
	"thank you", "thanks", "thank u", "thx", "appreciate", "grateful",
	"you helped", "that helped", "that was helpful",
}

func matchGratitude(lower string, _ int) bool {
	return containsAny(lower, gratitudeKeywords)
}

func matchClarification(lower string, _ int) bool {
	return emotion.IsNegated(lower)
}

var positiveMoodPhrases = []string{
	"happy", "excited", "great mood", "good mood", "feeling good",
	"feeling great", "in a happy", "wonderful",
}

var learningIntentPhrases = []string{
	"want to learn", "teach me", "learn about", "want to know about",
	"tell me about", "explain to me", "help me understand", "want to study",
}

func matchEmotionalLearning(lower string, _ int) bool {
	return containsAny(lower, positiveMoodPhrases) && containsAny(lower, learningIntentPhrases)
}

var greetingPhrases = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"yo", "hiya", "howdy",
}

func matchGreeting(lower string, words int) bool {
	if words > 5 {
		return false
	}
	for _, phrase := range greetingPhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+" ") || strings.HasPrefix(lower, phrase+",") || strings.HasPrefix(lower, phrase+"!") {
			return true
		}
	}
	return false
}

var practicalKeywords = []string{
	"job", "application", "applied", "resume", "cv", "interview", "form",
	"fill", "company", "position", "paypal",
}

var codeRequestKeywords = []string{
	"code", "program", "script", "function", "write a", "debug", "compile",
	"python code", "go code", "java code", "sql",
}

var helpRequestPhrases = []string{
	"help me with", "need to", "give me a", "give me an", "how do i",
	"how to", "can you make", "can you write",
}

func matchPracticalRequest(lower string, _ int) bool {
	return containsAny(lower, practicalKeywords) ||
		containsAny(lower, codeRequestKeywords) ||
		containsAny(lower, helpRequestPhrases)
}

var casualPhrases = []string{
	"how are you", "how're you", "how r u", "what's up", "whats up", "wassup",
	"i'm bored", "im bored", "what are you doing", "what you doing",
	"nothing much", "just chilling", "how's it going", "hows it going",
}

func matchCasualConversation(lower string, _ int) bool {
	return containsAny(lower, casualPhrases)
}

var questionPrefixes = []string{
	"what", "who", "where", "when", "why", "how", "which",
	"can ", "could ", "would ", "should ", "is ", "are ", "do ", "does ", "did ",
}

var incompleteQuestionFragments = []string{
	"give what", "which one", "what about", "and then", "what else",
}

func matchQuestion(lower string, _ int) bool {
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if strings.HasSuffix(lower, "?") {
		return true
	}
	return containsAny(lower, incompleteQuestionFragments)
}

func containsAny(text string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
