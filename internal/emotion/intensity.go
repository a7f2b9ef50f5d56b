package emotion

import "strings"

var highIntensityWords = []string{
	"extremely", "absolutely", "completely", "totally", "devastated",
	"furious", "terrified", "ecstatic", "heartbroken", "overwhelmed",
	"unbearable", "desperate", "!!!",
}

var mediumIntensityWords = []string{
	"very", "really", "so ", "quite", "deeply", "truly", "seriously", "!!",
}

var lowIntensityWords = []string{
	"slightly", "a bit", "a little", "somewhat", "kind of", "kinda",
	"maybe", "sort of",
}

// ComputeIntensity maps a confidence score onto a 0-100 scale, amplified or
// dampened by intensity keywords in the message.
func ComputeIntensity(text string, confidence float64) float64 {
	intensity := confidence * 100
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, highIntensityWords):
		intensity *= 1.4
	case containsAny(lower, mediumIntensityWords):
		intensity *= 1.2
	case containsAny(lower, lowIntensityWords):
		intensity *= 0.8
	}

	if intensity > 100 {
		intensity = 100
	}
	if intensity < 0 {
		intensity = 0
	}
	return intensity
}
