package types

// EmotionLabel is one of the fixed emotion classes the pipeline understands.
type EmotionLabel string

const (
	EmotionJoy      EmotionLabel = "joy"
	EmotionSadness  EmotionLabel = "sadness"
	EmotionAnger    EmotionLabel = "anger"
	EmotionFear     EmotionLabel = "fear"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionLove     EmotionLabel = "love"
	EmotionNeutral  EmotionLabel = "neutral"
)

// AllEmotions lists every valid label.
var AllEmotions = []EmotionLabel{
	EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear,
	EmotionSurprise, EmotionLove, EmotionNeutral,
}

// Valid reports whether the label is a member of the fixed set.
func (l EmotionLabel) Valid() bool {
	for _, label := range AllEmotions {
		if l == label {
			return true
		}
	}
	return false
}

// Negative reports whether the label is a distress emotion.
func (l EmotionLabel) Negative() bool {
	return l == EmotionSadness || l == EmotionAnger || l == EmotionFear
}

// Positive reports whether the label is an upbeat emotion.
func (l EmotionLabel) Positive() bool {
	return l == EmotionJoy || l == EmotionLove || l == EmotionSurprise
}

// Detection is the raw classifier output before correction.
type Detection struct {
	Primary      EmotionLabel
	Confidence   float64
	Distribution map[EmotionLabel]float64
}

// NeutralDetection is the degraded result used when the classifier fails.
func NeutralDetection() Detection {
	return Detection{
		Primary:    EmotionNeutral,
		Confidence: 0.5,
		Distribution: map[EmotionLabel]float64{
			EmotionNeutral: 0.5,
		},
	}
}

// EmotionResult is the corrected, context-aware emotion for one message.
// It is ephemeral and never persisted.
type EmotionResult struct {
	Primary      EmotionLabel
	Secondary    EmotionLabel // set only when a mixed emotion is detected
	Confidence   float64
	Intensity    float64 // 0-100, independent of confidence
	Distribution map[EmotionLabel]float64
	Context      ContextTag
	IsEmotional  bool
	Reasoning    string
}
