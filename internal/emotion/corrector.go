package emotion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/navin5447/Edgesoul/internal/types"
)

// Corrector post-processes raw classifier output with context-aware rules.
// Rules apply in strict first-match order; only one correction fires per
// message, except the mixed-emotion annotation which stacks on top.
type Corrector struct {
	rules []correctionRule
}

type correctionRule struct {
	name  string
	apply func(in correctionInput) (types.EmotionResult, bool)
}

type correctionInput struct {
	detection types.Detection
	text      string
	lower     string
	words     int
}

// NewCorrector returns a Corrector with the standard rule order.
func NewCorrector() *Corrector {
	return &Corrector{rules: []correctionRule{
		{name: "negation", apply: correctNegation},
		{name: "victim", apply: correctVictimContext},
		{name: "fear", apply: correctFear},
		{name: "joy", apply: correctJoy},
		{name: "low_confidence_negative", apply: correctLowConfidenceNegative},
	}}
}

// Correct returns the corrected emotion result for a raw detection.
func (c *Corrector) Correct(detection types.Detection, text string) types.EmotionResult {
	if !detection.Primary.Valid() {
		detection.Primary = types.EmotionNeutral
	}

	in := correctionInput{
		detection: detection,
		text:      text,
		lower:     strings.ToLower(strings.TrimSpace(text)),
		words:     len(strings.Fields(text)),
	}

	result, corrected := types.EmotionResult{}, false
	for _, rule := range c.rules {
		if r, ok := rule.apply(in); ok {
			result = r
			corrected = true
			break
		}
	}
	if !corrected {
		result = types.EmotionResult{
			Primary:      detection.Primary,
			Confidence:   detection.Confidence,
			Distribution: detection.Distribution,
			IsEmotional:  detection.Primary != types.EmotionNeutral && detection.Confidence > 0.6,
			Reasoning:    fmt.Sprintf("detected %s with %.2f confidence", detection.Primary, detection.Confidence),
		}
	}

	// Mixed-emotion annotation stacks: it never changes the primary label.
	if result.Context != types.ContextClarification {
		annotateMixedEmotion(&result, in)
	}

	result.Intensity = ComputeIntensity(text, result.Confidence)
	return result
}

// IsNegated reports whether the user is saying they are NOT feeling an
// emotion ("I'm not sad, just asking").
func IsNegated(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if containsAny(lower, negationPatterns) {
		return true
	}
	if !strings.Contains(lower, "not") && !strings.Contains(lower, "no") && !strings.Contains(lower, "n't") {
		return false
	}
	for _, word := range negatableEmotionWords {
		idx := strings.Index(lower, word)
		if idx < 0 {
			continue
		}
		start := idx - 15
		if start < 0 {
			start = 0
		}
		preceding := lower[start:idx]
		if strings.Contains(preceding, "not") || strings.Contains(preceding, "no ") || strings.Contains(preceding, "n't") {
			return true
		}
	}
	return false
}

var negationPatterns = []string{
	"i am not in sad", "i'm not in sad", "im not sad", "not sad",
	"i am not sad", "i'm not sad", "not feeling sad",
	"i am not angry", "i'm not angry", "im not angry", "not angry",
	"not mad", "i'm not mad", "im not mad",
	"i am not upset", "i'm not upset", "not upset",
	"not depressed", "not feeling", "i am not in",
	"just asked", "just asking", "just wanted to",
	"only asked", "only wanted", "just want to know",
	"not in sad", "not in angry", "not in fear",
}

var negatableEmotionWords = []string{
	"sad", "angry", "mad", "upset", "depressed", "scared", "fear", "worried", "anxious",
}

func correctNegation(in correctionInput) (types.EmotionResult, bool) {
	if !IsNegated(in.text) {
		return types.EmotionResult{}, false
	}
	return types.EmotionResult{
		Primary:      types.EmotionNeutral,
		Confidence:   0.9,
		Distribution: map[types.EmotionLabel]float64{types.EmotionNeutral: 0.9},
		Context:      types.ContextClarification,
		IsEmotional:  false,
		Reasoning:    "user is clarifying they are not feeling emotional",
	}, true
}

var victimKeywords = []string{
	"scold", "scolded", "blamed", "wrongly accused", "unfairly", "innocent",
	"punished", "criticized unfairly",
	"no one understands", "nobody understands", "no one talk", "nobody talk",
	"hopeless", "worthless", "meaningless",
	"i did not", "i didn't", "but i did not", "but i didn't",
	"not my fault but", "didn't do anything", "did nothing wrong",
}

func correctVictimContext(in correctionInput) (types.EmotionResult, bool) {
	if in.detection.Primary != types.EmotionAnger || !containsAny(in.lower, victimKeywords) {
		return types.EmotionResult{}, false
	}
	confidence := in.detection.Distribution[types.EmotionSadness]
	if confidence < 0.78 {
		confidence = 0.78
	}
	dist := map[types.EmotionLabel]float64{
		types.EmotionSadness: confidence,
		types.EmotionAnger:   in.detection.Confidence * 0.25,
		types.EmotionFear:    0.10,
	}
	// Redistribute whatever remains proportionally over the other labels.
	for label, p := range in.detection.Distribution {
		if label == types.EmotionSadness || label == types.EmotionAnger || label == types.EmotionFear {
			continue
		}
		dist[label] = p * 0.4
	}
	return types.EmotionResult{
		Primary:      types.EmotionSadness,
		Confidence:   confidence,
		Distribution: dist,
		IsEmotional:  true,
		Reasoning:    "relabeled anger as sadness: victim context detected",
	}, true
}

func correctFear(in correctionInput) (types.EmotionResult, bool) {
	if in.detection.Primary != types.EmotionAnger && in.detection.Primary != types.EmotionNeutral {
		return types.EmotionResult{}, false
	}
	if !containsAny(in.lower, fearPatterns) || in.words <= 3 {
		return types.EmotionResult{}, false
	}
	return types.EmotionResult{
		Primary:    types.EmotionFear,
		Confidence: 0.75,
		Distribution: map[types.EmotionLabel]float64{
			types.EmotionFear:    0.75,
			in.detection.Primary: in.detection.Confidence * 0.20,
			types.EmotionNeutral: 0.05,
		},
		IsEmotional: true,
		Reasoning:   fmt.Sprintf("relabeled %s as fear: explicit fear keywords", in.detection.Primary),
	}, true
}

var joyIndicators = []string{
	"happy", "excited", "awesome", "great", "wonderful", "love it", "amazing",
	"fantastic", "brilliant",
}

func correctJoy(in correctionInput) (types.EmotionResult, bool) {
	if in.detection.Primary != types.EmotionNeutral || in.detection.Confidence >= 0.7 {
		return types.EmotionResult{}, false
	}
	if !containsAny(in.lower, joyIndicators) {
		return types.EmotionResult{}, false
	}
	return types.EmotionResult{
		Primary:    types.EmotionJoy,
		Confidence: 0.80,
		Distribution: map[types.EmotionLabel]float64{
			types.EmotionJoy:      0.80,
			types.EmotionNeutral:  0.15,
			types.EmotionSurprise: 0.05,
		},
		IsEmotional: true,
		Reasoning:   "relabeled neutral as joy: clear positive indicators",
	}, true
}

var negativeContextWords = []string{
	"not", "but", "wrong", "bad", "problem", "issue", "difficult", "hard",
	"struggle", "tough",
}

func correctLowConfidenceNegative(in correctionInput) (types.EmotionResult, bool) {
	if in.detection.Confidence >= 0.20 || in.words <= 5 {
		return types.EmotionResult{}, false
	}
	count := 0
	for _, word := range negativeContextWords {
		if strings.Contains(in.lower, word) {
			count++
		}
	}
	if count < 2 {
		return types.EmotionResult{}, false
	}
	return types.EmotionResult{
		Primary:    types.EmotionSadness,
		Confidence: 0.65,
		Distribution: map[types.EmotionLabel]float64{
			types.EmotionSadness: 0.65,
			types.EmotionNeutral: 0.20,
			types.EmotionAnger:   0.08,
			types.EmotionFear:    0.07,
		},
		IsEmotional: true,
		Reasoning:   fmt.Sprintf("low confidence with %d negative context words, adjusted to sadness", count),
	}, true
}

var contrastiveConjunctions = []string{" but ", " however ", " although ", " though "}

// annotateMixedEmotion marks a secondary emotion when the message contains a
// contrastive conjunction and the second-ranked label carries real mass.
func annotateMixedEmotion(result *types.EmotionResult, in correctionInput) {
	if !containsAny(" "+in.lower+" ", contrastiveConjunctions) {
		return
	}
	if len(result.Distribution) < 2 {
		return
	}

	type scored struct {
		label types.EmotionLabel
		p     float64
	}
	ranked := make([]scored, 0, len(result.Distribution))
	for label, p := range result.Distribution {
		ranked = append(ranked, scored{label, p})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].p != ranked[j].p {
			return ranked[i].p > ranked[j].p
		}
		return ranked[i].label < ranked[j].label
	})

	if ranked[1].p > 0.20 {
		result.Secondary = ranked[1].label
		result.Confidence *= 0.85
		result.Reasoning += fmt.Sprintf("; mixed emotions: %s + %s", result.Primary, ranked[1].label)
	}
}
