package memory

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/navin5447/Edgesoul/internal/types"
)

// preferenceKind names the profile dimension a learned preference adjusts.
type preferenceKind int

const (
	prefVerbosityHigh preferenceKind = iota
	prefVerbosityLow
	prefFormalityHigh
	prefFormalityLow
	prefHumorHigh
	prefHumorLow
	prefEmojiOff
	prefEmojiOn
	prefInterest
	prefDislike
)

type preferencePattern struct {
	re   *regexp.Regexp
	kind preferenceKind
}

// Ordered: specific style statements before the broad interest catch-alls,
// so "I like brief answers" adjusts verbosity instead of becoming an
// interest in "brief answers".
var preferencePatterns = []preferencePattern{
	{regexp.MustCompile(`i (?:like|prefer|enjoy) (?:detailed|long) (?:answers|responses|explanations)`), prefVerbosityHigh},
	{regexp.MustCompile(`i (?:like|prefer|enjoy) (?:brief|short) (?:answers|responses|explanations)`), prefVerbosityLow},
	{regexp.MustCompile(`keep it (?:brief|short|concise)`), prefVerbosityLow},
	{regexp.MustCompile(`give me more (?:details|information)`), prefVerbosityHigh},
	{regexp.MustCompile(`be more (?:formal|professional)`), prefFormalityHigh},
	{regexp.MustCompile(`you can be (?:casual|informal)`), prefFormalityLow},
	{regexp.MustCompile(`don'?t be so (?:formal|serious)`), prefFormalityLow},
	{regexp.MustCompile(`i (?:love|like|enjoy) (?:jokes|humor|being funny)`), prefHumorHigh},
	{regexp.MustCompile(`(?:less|fewer) jokes`), prefHumorLow},
	{regexp.MustCompile(`(?:stop using|no) emojis`), prefEmojiOff},
	{regexp.MustCompile(`i like emojis`), prefEmojiOn},
	{regexp.MustCompile(`i'?m interested in (.+)`), prefInterest},
	{regexp.MustCompile(`i (?:love|like|enjoy) (.+)`), prefInterest},
	{regexp.MustCompile(`i don'?t like (.+)`), prefDislike},
}

const preferenceLevelStep = 20

// LearnPreference detects an explicit preference statement in the message,
// stores it as a preference memory, and applies it to the profile. The
// returned bool is false when the message states no preference.
func (s *Service) LearnPreference(ctx context.Context, userID, message string) (types.Memory, bool, error) {
	lower := strings.ToLower(message)

	for _, p := range preferencePatterns {
		match := p.re.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		extracted := ""
		if len(match) > 1 {
			extracted = strings.TrimSpace(match[1])
		}

		mem, err := s.AddMemory(ctx, types.Memory{
			UserID:     userID,
			Kind:       types.MemoryPreference,
			Content:    preferenceContent(p.kind, extracted),
			Context:    message,
			Confidence: 0.8,
			Importance: 0.7,
		})
		if err != nil {
			return types.Memory{}, false, err
		}

		if _, err := s.UpdateProfile(ctx, userID, preferencePatch(p.kind, extracted)); err != nil {
			return types.Memory{}, false, fmt.Errorf("apply preference: %w", err)
		}
		return mem, true, nil
	}

	return types.Memory{}, false, nil
}

func preferenceContent(kind preferenceKind, extracted string) string {
	switch kind {
	case prefVerbosityHigh:
		return "User prefers detailed responses"
	case prefVerbosityLow:
		return "User prefers brief responses"
	case prefFormalityHigh:
		return "User prefers a formal tone"
	case prefFormalityLow:
		return "User prefers a casual tone"
	case prefHumorHigh:
		return "User enjoys humor"
	case prefHumorLow:
		return "User wants less humor"
	case prefEmojiOff:
		return "User dislikes emojis"
	case prefEmojiOn:
		return "User likes emojis"
	case prefInterest:
		return "User interest: " + extracted
	case prefDislike:
		return "User dislike: " + extracted
	}
	return ""
}

// preferencePatch builds the profile delta for a learned preference. Level
// adjustments move by a fixed step; Apply clamps to 0-100.
func preferencePatch(kind preferenceKind, extracted string) types.ProfilePatch {
	var patch types.ProfilePatch
	switch kind {
	case prefVerbosityHigh:
		patch.VerbosityDelta = preferenceLevelStep
	case prefVerbosityLow:
		patch.VerbosityDelta = -preferenceLevelStep
	case prefFormalityHigh:
		patch.FormalityDelta = preferenceLevelStep
	case prefFormalityLow:
		patch.FormalityDelta = -preferenceLevelStep
	case prefHumorHigh:
		patch.HumorDelta = preferenceLevelStep
	case prefHumorLow:
		patch.HumorDelta = -preferenceLevelStep
	case prefEmojiOff:
		off := false
		patch.EmojiEnabled = &off
	case prefEmojiOn:
		on := true
		patch.EmojiEnabled = &on
	case prefInterest:
		if extracted != "" {
			patch.AddInterests = []string{extracted}
		}
	case prefDislike:
		if extracted != "" {
			patch.AddDislikes = []string{extracted}
		}
	}
	return patch
}
