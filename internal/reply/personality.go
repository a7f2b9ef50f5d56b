package reply

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/navin5447/Edgesoul/internal/types"
)

// PersonalityAdapter rewrites a finished reply to match the user's learned
// personality levels. It only reshapes text; tone and content decisions
// happen in the handlers.
type PersonalityAdapter struct {
	rng *rand.Rand
}

func NewPersonalityAdapter(rng *rand.Rand) *PersonalityAdapter {
	return &PersonalityAdapter{rng: rng}
}

const (
	verbosityBriefBelow   = 40
	verbosityDetailAbove  = 70
	proactivenessAskAbove = 60
	elaborationWordLimit  = 30
)

const elaboration = " I understand this might be important to you, and I'm here to help however I can."

// Adapt applies verbosity, proactiveness, and emoji preferences to text.
// emotional marks replies addressing a non-neutral emotion; only those get
// the high-verbosity elaboration.
func (a *PersonalityAdapter) Adapt(text string, profile types.UserProfile, emotional bool) string {
	if profile.Verbosity < verbosityBriefBelow {
		text = firstSentences(text, 2)
	} else if profile.Verbosity > verbosityDetailAbove {
		if emotional && len(strings.Fields(text)) < elaborationWordLimit {
			text += elaboration
		}
	}

	if profile.Proactiveness > proactivenessAskAbove && !strings.HasSuffix(strings.TrimSpace(text), "?") {
		text += proactiveAdditions[a.rng.Intn(len(proactiveAdditions))]
	}

	if !profile.EmojiEnabled {
		text = stripEmoji(text)
	}
	return text
}

// toneHint maps the formality and humor levels to a generation tone hint for
// the backend prompt.
func toneHint(profile types.UserProfile) string {
	switch {
	case profile.Formality < 30 && profile.Humor > 70:
		return "very casual and playful with humor"
	case profile.Formality > 70 && profile.Humor < 30:
		return "polite, respectful and serious"
	case profile.Formality < 30:
		return "casual and relaxed"
	case profile.Humor > 70:
		return "friendly with light humor"
	case profile.Formality > 70:
		return "polite and respectful"
	default:
		return "warm and friendly"
	}
}

// firstSentences keeps at most n ". "-delimited sentences, restoring the
// trailing period.
func firstSentences(text string, n int) string {
	sentences := strings.Split(text, ". ")
	if len(sentences) <= n {
		return text
	}
	return strings.Join(sentences[:n], ". ") + "."
}

var emojiRe = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{2600}-\x{26FF}\x{FE0F}]+`)

func stripEmoji(text string) string {
	return strings.TrimSpace(emojiRe.ReplaceAllString(text, ""))
}
