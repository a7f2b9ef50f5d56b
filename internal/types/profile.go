package types

import "time"

// TonePreset selects the default phrasing and length tables for replies.
type TonePreset string

const (
	ToneMaleLeaning   TonePreset = "male_leaning"
	ToneFemaleLeaning TonePreset = "female_leaning"
	ToneBalanced      TonePreset = "balanced"
)

// UserProfile holds per-user personality levels and learned preferences.
// Levels are always clamped to 0-100.
type UserProfile struct {
	UserID string
	Name   string

	Empathy       int
	Humor         int
	Formality     int
	Verbosity     int
	Proactiveness int

	TonePreset   TonePreset
	EmojiEnabled bool

	Interests []string
	Dislikes  []string

	TotalConversations int
	TotalMessages      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserProfile returns a profile with the default personality levels.
func NewUserProfile(userID string) UserProfile {
	now := time.Now()
	return UserProfile{
		UserID:        userID,
		Empathy:       75,
		Humor:         50,
		Formality:     40,
		Verbosity:     60,
		Proactiveness: 50,
		TonePreset:    ToneBalanced,
		EmojiEnabled:  true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name          *string
	Empathy       *int
	Humor         *int
	Formality     *int
	Verbosity     *int
	Proactiveness *int
	TonePreset    *TonePreset
	EmojiEnabled  *bool
	AddInterests  []string
	AddDislikes   []string

	// Deltas shift a level relative to its current value; they compose with
	// the absolute fields above (absolute applies first).
	HumorDelta     int
	FormalityDelta int
	VerbosityDelta int
}

// Apply merges the patch into the profile, clamping levels and deduplicating
// interest/dislike sets.
func (p ProfilePatch) Apply(profile *UserProfile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Empathy != nil {
		profile.Empathy = ClampLevel(*p.Empathy)
	}
	if p.Humor != nil {
		profile.Humor = ClampLevel(*p.Humor)
	}
	if p.Formality != nil {
		profile.Formality = ClampLevel(*p.Formality)
	}
	if p.Verbosity != nil {
		profile.Verbosity = ClampLevel(*p.Verbosity)
	}
	if p.Proactiveness != nil {
		profile.Proactiveness = ClampLevel(*p.Proactiveness)
	}
	if p.HumorDelta != 0 {
		profile.Humor = ClampLevel(profile.Humor + p.HumorDelta)
	}
	if p.FormalityDelta != 0 {
		profile.Formality = ClampLevel(profile.Formality + p.FormalityDelta)
	}
	if p.VerbosityDelta != 0 {
		profile.Verbosity = ClampLevel(profile.Verbosity + p.VerbosityDelta)
	}
	if p.TonePreset != nil {
		profile.TonePreset = *p.TonePreset
	}
	if p.EmojiEnabled != nil {
		profile.EmojiEnabled = *p.EmojiEnabled
	}
	profile.Interests = appendUnique(profile.Interests, p.AddInterests)
	profile.Dislikes = appendUnique(profile.Dislikes, p.AddDislikes)
	profile.UpdatedAt = time.Now()
}

// ClampLevel bounds a personality level to 0-100.
func ClampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	default:
		return level
	}
}

func appendUnique(existing, incoming []string) []string {
	for _, item := range incoming {
		found := false
		for _, have := range existing {
			if have == item {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, item)
		}
	}
	return existing
}
