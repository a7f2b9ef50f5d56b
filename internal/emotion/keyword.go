package emotion

import (
	"context"
	"strings"

	"github.com/navin5447/Edgesoul/internal/types"
)

// KeywordClassifier is a deterministic classifier used when no model is
// configured or the model call fails. It front-loads the cases an ML
// classifier tends to get wrong: practical questions read as anger, greetings
// read as joy, and so on.
type KeywordClassifier struct{}

// NewKeywordClassifier returns a KeywordClassifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var practicalNeutralPatterns = []string{
	"applied", "application", "job", "career", "resume", "cv", "interview",
	"paypal", "company", "position", "why did you choose", "form", "fill",
	"include on", "what to include", "give what", "need what",
}

var frustrationPatterns = []string{
	"frustrated", "frustrating", "annoyed", "annoying", "irritated", "irritating",
	"pissed", "mad", "angry", "furious", "upset", "stressed", "hate this",
	"stupid", "ridiculous", "terrible", "awful", "doesn't work", "not working",
	"bug", "error", "broken", "failing", "fail",
}

var fearPatterns = []string{
	"afraid", "scared", "worried", "anxious", "nervous", "terrified", "panic",
	"fear", "fearful", "frightened", "in fear", "am in fear", "i'm in fear",
	"feel fear", "feeling fear", "feeling anxious", "feeling nervous",
}

var casualStatePatterns = []string{
	"hungry", "thirsty", "tired", "sleepy", "bored", "busy",
}

var humorRequestPatterns = []string{
	"can you", "could you", "please", "tell me a joke", "say a joke", "any joke",
	"make me laugh", "something funny",
}

var factualQuestionPatterns = []string{
	"what can you", "how do you", "explain", "help me", "show me", "teach me",
	"what is", "who is", "where is", "when is", "why is",
}

var greetingPatterns = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"how are you", "what's up", "okay", "ok", "bye", "goodbye", "see you",
}

var keywordScores = map[types.EmotionLabel][]string{
	types.EmotionJoy:      {"happy", "joy", "excited", "great", "wonderful", "love", "awesome", "fantastic"},
	types.EmotionSadness:  {"sad", "unhappy", "depress", "down", "sorry", "disappointed", "hurt", "nobody", "alone", "hopeless", "no one", "isolated", "lonely"},
	types.EmotionAnger:    {"angry", "mad", "furious", "annoyed", "frustrated", "hate", "disgusted"},
	types.EmotionFear:     {"afraid", "scared", "worried", "anxious", "nervous", "terrified", "panic", "fear", "fearful", "frightened"},
	types.EmotionSurprise: {"wow", "amazing", "surprised", "unexpected", "incredible", "unbelievable"},
}

// Detect classifies text with keyword tables. It never fails.
func (c *KeywordClassifier) Detect(_ context.Context, text string) (types.Detection, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return types.NeutralDetection(), nil
	}

	// Practical questions first: job applications and forms are not anger.
	if containsAny(lower, practicalNeutralPatterns) {
		return fixedDetection(types.EmotionNeutral, 0.90), nil
	}
	if containsAny(lower, frustrationPatterns) {
		return fixedDetection(types.EmotionAnger, 0.88), nil
	}
	if containsAny(lower, fearPatterns) {
		return fixedDetection(types.EmotionFear, 0.88), nil
	}
	if containsAny(lower, casualStatePatterns) {
		return fixedDetection(types.EmotionNeutral, 0.85), nil
	}
	if containsAny(lower, humorRequestPatterns) {
		return fixedDetection(types.EmotionJoy, 0.85), nil
	}
	if containsAny(lower, factualQuestionPatterns) {
		return fixedDetection(types.EmotionNeutral, 0.85), nil
	}
	if isGreeting(lower) {
		return fixedDetection(types.EmotionNeutral, 0.90), nil
	}
	if strings.Contains(lower, "thank") || strings.Contains(lower, "thx") {
		return fixedDetection(types.EmotionNeutral, 0.85), nil
	}

	return scoreKeywords(lower), nil
}

func isGreeting(lower string) bool {
	for _, pattern := range greetingPatterns {
		if pattern == lower {
			return true
		}
		if strings.Contains(lower, pattern) && len(lower) <= 15 {
			return true
		}
	}
	return false
}

func scoreKeywords(lower string) types.Detection {
	scores := map[types.EmotionLabel]float64{types.EmotionNeutral: 3}
	for label, keywords := range keywordScores {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[label] += 2
			}
		}
	}
	emotional := 0.0
	for label, score := range scores {
		if label != types.EmotionNeutral {
			emotional += score
		}
	}
	if emotional == 0 {
		scores[types.EmotionNeutral] = 8
	}

	total := 0.0
	for _, score := range scores {
		total += score
	}
	dist := make(map[types.EmotionLabel]float64, len(scores))
	for label, score := range scores {
		dist[label] = score / total
	}
	// Fixed iteration order keeps ties deterministic.
	primary := types.EmotionNeutral
	best := scores[types.EmotionNeutral]
	for _, label := range types.AllEmotions {
		if scores[label] > best {
			best = scores[label]
			primary = label
		}
	}
	return types.Detection{Primary: primary, Confidence: dist[primary], Distribution: dist}
}

func fixedDetection(label types.EmotionLabel, confidence float64) types.Detection {
	dist := make(map[types.EmotionLabel]float64, len(types.AllEmotions))
	rest := (1 - confidence) / float64(len(types.AllEmotions)-1)
	for _, l := range types.AllEmotions {
		dist[l] = rest
	}
	dist[label] = confidence
	return types.Detection{Primary: label, Confidence: confidence, Distribution: dist}
}

func containsAny(text string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
