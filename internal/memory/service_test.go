package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/navin5447/Edgesoul/internal/types"
)

type fakeProfileRepo struct {
	profiles map[string]types.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]types.UserProfile)}
}

func (r *fakeProfileRepo) Get(_ context.Context, userID string) (types.UserProfile, bool, error) {
	p, ok := r.profiles[userID]
	return p, ok, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile types.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

type fakeMemoryRepo struct {
	entries []types.Memory
	touched []string
}

func (r *fakeMemoryRepo) Add(_ context.Context, mem types.Memory) error {
	r.entries = append(r.entries, mem)
	return nil
}

func (r *fakeMemoryRepo) Search(_ context.Context, userID, query string, kinds []types.MemoryKind, minConfidence float64, limit int) ([]types.Memory, error) {
	var results []types.Memory
	for _, mem := range r.entries {
		if mem.UserID != userID || mem.Confidence < minConfidence {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(mem.Content), strings.ToLower(query)) {
			continue
		}
		if len(kinds) > 0 {
			match := false
			for _, kind := range kinds {
				if mem.Kind == kind {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		results = append(results, mem)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Importance != results[j].Importance {
			return results[i].Importance > results[j].Importance
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *fakeMemoryRepo) Recent(_ context.Context, userID string, since time.Time, limit int) ([]types.Memory, error) {
	var results []types.Memory
	for _, mem := range r.entries {
		if mem.UserID == userID && mem.CreatedAt.After(since) {
			results = append(results, mem)
		}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *fakeMemoryRepo) Touch(_ context.Context, ids []string) error {
	r.touched = append(r.touched, ids...)
	return nil
}

func (r *fakeMemoryRepo) SearchSimilar(_ context.Context, _ string, _ []float32, _ int, _ float64) ([]SimilarMemory, error) {
	return nil, nil
}

type fakePatternRepo struct {
	patterns map[string]types.EmotionalPattern
}

func newFakePatternRepo() *fakePatternRepo {
	return &fakePatternRepo{patterns: make(map[string]types.EmotionalPattern)}
}

func (r *fakePatternRepo) key(userID string, emotion types.EmotionLabel) string {
	return userID + "/" + string(emotion)
}

func (r *fakePatternRepo) Get(_ context.Context, userID string, emotion types.EmotionLabel) (types.EmotionalPattern, bool, error) {
	p, ok := r.patterns[r.key(userID, emotion)]
	return p, ok, nil
}

func (r *fakePatternRepo) Upsert(_ context.Context, pattern types.EmotionalPattern) error {
	r.patterns[r.key(pattern.UserID, pattern.Emotion)] = pattern
	return nil
}

func (r *fakePatternRepo) List(_ context.Context, userID string) ([]types.EmotionalPattern, error) {
	var results []types.EmotionalPattern
	for _, p := range r.patterns {
		if p.UserID == userID {
			results = append(results, p)
		}
	}
	return results, nil
}

type fakeConversationRepo struct {
	conversations map[string]types.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[string]types.Conversation)}
}

func (r *fakeConversationRepo) Get(_ context.Context, userID string) (types.Conversation, bool, error) {
	c, ok := r.conversations[userID]
	return c, ok, nil
}

func (r *fakeConversationRepo) Save(_ context.Context, conversation types.Conversation) error {
	r.conversations[conversation.UserID] = conversation
	return nil
}

func newTestService() (*Service, *fakeProfileRepo, *fakeMemoryRepo, *fakePatternRepo, *fakeConversationRepo) {
	profiles := newFakeProfileRepo()
	memories := &fakeMemoryRepo{}
	patterns := newFakePatternRepo()
	conversations := newFakeConversationRepo()
	svc := NewService(profiles, memories, patterns, conversations, nil, nil)
	return svc, profiles, memories, patterns, conversations
}

func TestTrackEmotionRunningAverage(t *testing.T) {
	svc, _, _, patterns, _ := newTestService()
	ctx := t.Context()

	if err := svc.TrackEmotion(ctx, "u1", types.EmotionJoy, 70, ""); err != nil {
		t.Fatalf("track: %v", err)
	}
	if err := svc.TrackEmotion(ctx, "u1", types.EmotionJoy, 90, ""); err != nil {
		t.Fatalf("track: %v", err)
	}

	pattern, ok, _ := patterns.Get(ctx, "u1", types.EmotionJoy)
	if !ok {
		t.Fatal("pattern not saved")
	}
	if pattern.Frequency != 2 {
		t.Fatalf("frequency = %d, want 2", pattern.Frequency)
	}
	if math.Abs(pattern.AvgIntensity-80.0) > 1e-9 {
		t.Fatalf("avg intensity = %.4f, want 80.0", pattern.AvgIntensity)
	}
}

func TestTrackEmotionExactIncrementalMean(t *testing.T) {
	svc, _, _, patterns, _ := newTestService()
	ctx := t.Context()

	svc.TrackEmotion(ctx, "u1", types.EmotionSadness, 80, "exam stress today")
	svc.TrackEmotion(ctx, "u1", types.EmotionSadness, 90, "deadline panic again")

	pattern, _, _ := patterns.Get(ctx, "u1", types.EmotionSadness)
	if pattern.AvgIntensity != 85.0 {
		t.Fatalf("avg intensity = %v, want exactly 85.0", pattern.AvgIntensity)
	}
	if len(pattern.Triggers) == 0 {
		t.Fatal("expected trigger keywords recorded")
	}
	if len(pattern.TimeOfDay) == 0 {
		t.Fatal("expected hour histogram updated")
	}
}

func TestUpdateConversationBoundsWindow(t *testing.T) {
	svc, _, _, _, conversations := newTestService()
	ctx := t.Context()

	for i := 0; i < 25; i++ {
		if err := svc.UpdateConversation(ctx, "u1", "s1", "hello there", "hi!", types.EmotionNeutral); err != nil {
			t.Fatalf("update conversation: %v", err)
		}
	}

	conversation, ok, _ := conversations.Get(ctx, "u1")
	if !ok {
		t.Fatal("conversation not saved")
	}
	if len(conversation.Turns) > types.MaxTurns {
		t.Fatalf("window length %d exceeds bound %d", len(conversation.Turns), types.MaxTurns)
	}
	if len(conversation.Trajectory) > 20 {
		t.Fatalf("trajectory length %d exceeds bound", len(conversation.Trajectory))
	}
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := t.Context()

	before, err := svc.GetOrCreateProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	empathy := 90
	after, err := svc.UpdateProfile(ctx, "u1", types.ProfilePatch{Empathy: &empathy})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if after.Empathy != 90 {
		t.Fatalf("empathy = %d, want 90", after.Empathy)
	}
	if after.Humor != before.Humor ||
		after.Formality != before.Formality ||
		after.Verbosity != before.Verbosity ||
		after.Proactiveness != before.Proactiveness ||
		after.TonePreset != before.TonePreset ||
		after.EmojiEnabled != before.EmojiEnabled ||
		after.Name != before.Name {
		t.Fatalf("partial merge disturbed unrelated fields: before=%+v after=%+v", before, after)
	}
}

func TestUpdateProfileClampsLevels(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	high := 150
	profile, err := svc.UpdateProfile(t.Context(), "u1", types.ProfilePatch{Verbosity: &high})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.Verbosity != 100 {
		t.Fatalf("verbosity = %d, want clamped 100", profile.Verbosity)
	}
}

func TestSearchMemoriesOrdersAndTouches(t *testing.T) {
	svc, _, memories, _, _ := newTestService()
	ctx := t.Context()

	svc.AddMemory(ctx, types.Memory{UserID: "u1", Kind: types.MemoryFact, Content: "likes hiking in the alps", Confidence: 0.9, Importance: 0.3})
	svc.AddMemory(ctx, types.Memory{UserID: "u1", Kind: types.MemoryFact, Content: "hiking trip planned for june", Confidence: 0.9, Importance: 0.8})

	results, err := svc.SearchMemories(ctx, "u1", "hiking", nil, 0, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Importance < results[1].Importance {
		t.Fatal("results not ordered importance desc")
	}
	if len(memories.touched) != 2 {
		t.Fatalf("expected 2 access touches, got %d", len(memories.touched))
	}
}

func TestLearnPreferenceAdjustsVerbosity(t *testing.T) {
	svc, _, memories, _, _ := newTestService()
	ctx := t.Context()

	before, _ := svc.GetOrCreateProfile(ctx, "u1")

	mem, learned, err := svc.LearnPreference(ctx, "u1", "please keep it short")
	if err != nil {
		t.Fatalf("learn preference: %v", err)
	}
	if !learned {
		t.Fatal("expected preference to be learned")
	}
	if mem.Kind != types.MemoryPreference {
		t.Fatalf("memory kind = %s", mem.Kind)
	}
	if len(memories.entries) != 1 {
		t.Fatalf("expected stored preference memory, got %d entries", len(memories.entries))
	}

	after, _ := svc.GetOrCreateProfile(ctx, "u1")
	if after.Verbosity != before.Verbosity-20 {
		t.Fatalf("verbosity = %d, want %d", after.Verbosity, before.Verbosity-20)
	}
}

func TestLearnPreferenceEmojiToggleAndInterest(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := t.Context()

	if _, learned, _ := svc.LearnPreference(ctx, "u1", "stop using emojis please"); !learned {
		t.Fatal("emoji preference not learned")
	}
	profile, _ := svc.GetOrCreateProfile(ctx, "u1")
	if profile.EmojiEnabled {
		t.Fatal("emoji should be disabled")
	}

	if _, learned, _ := svc.LearnPreference(ctx, "u1", "i'm interested in astronomy"); !learned {
		t.Fatal("interest not learned")
	}
	profile, _ = svc.GetOrCreateProfile(ctx, "u1")
	found := false
	for _, interest := range profile.Interests {
		if interest == "astronomy" {
			found = true
		}
	}
	if !found {
		t.Fatalf("astronomy not in interests: %v", profile.Interests)
	}
}

func TestLearnPreferenceIgnoresPlainMessages(t *testing.T) {
	svc, _, memories, _, _ := newTestService()

	_, learned, err := svc.LearnPreference(t.Context(), "u1", "what is the capital of france")
	if err != nil {
		t.Fatalf("learn preference: %v", err)
	}
	if learned {
		t.Fatal("plain question must not register a preference")
	}
	if len(memories.entries) != 0 {
		t.Fatal("no memory should be stored")
	}
}

func TestGetContextSummaryFormatsHistory(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := t.Context()

	svc.UpdateConversation(ctx, "u1", "s1", "tell me about telescopes", "Telescopes gather light...", types.EmotionJoy)
	svc.UpdateConversation(ctx, "u1", "s1", "and about galaxies too", "Galaxies are...", types.EmotionJoy)

	summary, err := svc.GetContextSummary(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("context summary: %v", err)
	}
	if !strings.Contains(summary, "Recent conversation:") {
		t.Fatalf("summary missing header: %q", summary)
	}
	if !strings.Contains(summary, "telescopes") {
		t.Fatalf("summary missing topic text: %q", summary)
	}
	if !strings.Contains(summary, "joy") {
		t.Fatalf("summary missing emotion histogram: %q", summary)
	}
}

func TestGetContextSummaryEmptyForNewUser(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	summary, err := svc.GetContextSummary(t.Context(), "nobody", 3)
	if err != nil {
		t.Fatalf("context summary: %v", err)
	}
	if summary != "" {
		t.Fatalf("expected empty summary, got %q", summary)
	}
}

func TestGetEmotionSummaryTrend(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := t.Context()

	for i := 0; i < 6; i++ {
		svc.TrackEmotion(ctx, "u1", types.EmotionJoy, 70, "")
	}
	svc.TrackEmotion(ctx, "u1", types.EmotionSadness, 40, "")

	summary, ok, err := svc.GetEmotionSummary(ctx, "u1")
	if err != nil {
		t.Fatalf("emotion summary: %v", err)
	}
	if !ok {
		t.Fatal("expected summary")
	}
	if summary.DominantEmotion != types.EmotionJoy {
		t.Fatalf("dominant = %s, want joy", summary.DominantEmotion)
	}
	if summary.MoodTrend != "improving" {
		t.Fatalf("trend = %s, want improving", summary.MoodTrend)
	}
}

func TestExtractKeywordsFiltersStopwords(t *testing.T) {
	keywords := ExtractKeywords("I am worried about the chemistry exam and the chemistry teacher", 5)
	if len(keywords) == 0 {
		t.Fatal("expected keywords")
	}
	if keywords[0] != "chemistry" {
		t.Fatalf("most frequent keyword should rank first, got %v", keywords)
	}
	for _, kw := range keywords {
		if kw == "the" || kw == "and" {
			t.Fatalf("stopword leaked: %v", keywords)
		}
	}
}
