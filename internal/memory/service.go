// Package memory implements per-user long-term memory: profiles, learned
// preferences, emotional patterns, and the bounded conversation window.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/navin5447/Edgesoul/internal/types"
)

// ProfileRepo persists user profiles.
type ProfileRepo interface {
	Get(ctx context.Context, userID string) (types.UserProfile, bool, error)
	Save(ctx context.Context, profile types.UserProfile) error
}

// MemoryRepo persists long-term memory entries.
type MemoryRepo interface {
	Add(ctx context.Context, mem types.Memory) error
	Search(ctx context.Context, userID, query string, kinds []types.MemoryKind, minConfidence float64, limit int) ([]types.Memory, error)
	Recent(ctx context.Context, userID string, since time.Time, limit int) ([]types.Memory, error)
	Touch(ctx context.Context, ids []string) error
	SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]SimilarMemory, error)
}

// PatternRepo persists one EmotionalPattern row per (user, emotion).
type PatternRepo interface {
	Get(ctx context.Context, userID string, emotion types.EmotionLabel) (types.EmotionalPattern, bool, error)
	Upsert(ctx context.Context, pattern types.EmotionalPattern) error
	List(ctx context.Context, userID string) ([]types.EmotionalPattern, error)
}

// ConversationRepo persists the bounded conversation context, one row per
// user.
type ConversationRepo interface {
	Get(ctx context.Context, userID string) (types.Conversation, bool, error)
	Save(ctx context.Context, conversation types.Conversation) error
}

// SimilarMemory is one semantic recall hit.
type SimilarMemory struct {
	Content    string
	Kind       types.MemoryKind
	Similarity float64
	Importance float64
	CreatedAt  time.Time
}

// EmotionSummary describes a user's recent emotional landscape.
type EmotionSummary struct {
	UserID          string
	DominantEmotion types.EmotionLabel
	Distribution    map[types.EmotionLabel]float64 // percentages
	MoodTrend       string                         // improving, declining, stable
	NotablePatterns []string
}

// Service coordinates memory reads and writes. Writes for the same user are
// serialized through a per-user mutex so concurrent requests cannot lose
// updates on the bounded-window fields.
type Service struct {
	profiles      ProfileRepo
	memories      MemoryRepo
	patterns      PatternRepo
	conversations ConversationRepo
	embedder      Embedder
	logger        *slog.Logger

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewService returns a memory Service. embedder may be nil; memories are then
// stored without embeddings and semantic recall is unavailable.
func NewService(profiles ProfileRepo, memories MemoryRepo, patterns PatternRepo, conversations ConversationRepo, embedder Embedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		profiles:      profiles,
		memories:      memories,
		patterns:      patterns,
		conversations: conversations,
		embedder:      embedder,
		logger:        logger,
		userLocks:     make(map[string]*sync.Mutex),
	}
}

func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// GetOrCreateProfile returns the user's profile, creating the default one on
// first contact.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID string) (types.UserProfile, error) {
	profile, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if found {
		return profile, nil
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return s.getOrCreateProfileLocked(ctx, userID)
}

// getOrCreateProfileLocked assumes the caller holds the user's lock.
func (s *Service) getOrCreateProfileLocked(ctx context.Context, userID string) (types.UserProfile, error) {
	// Another request may have created it while we waited for the lock.
	profile, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if found {
		return profile, nil
	}

	profile = types.NewUserProfile(userID)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return types.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile merges a partial patch into the stored profile. Fields the
// patch leaves nil are untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch types.ProfilePatch) (types.UserProfile, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.getOrCreateProfileLocked(ctx, userID)
	if err != nil {
		return types.UserProfile{}, err
	}
	patch.Apply(&profile)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return types.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// RecordUsage bumps the message counter, and the conversation counter when
// newConversation is set.
func (s *Service) RecordUsage(ctx context.Context, userID string, newConversation bool) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.getOrCreateProfileLocked(ctx, userID)
	if err != nil {
		return err
	}
	profile.TotalMessages++
	if newConversation {
		profile.TotalConversations++
	}
	profile.UpdatedAt = time.Now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// AddMemory stores a new memory entry, embedding its content when an embedder
// is configured.
func (s *Service) AddMemory(ctx context.Context, mem types.Memory) (types.Memory, error) {
	if mem.ID == "" {
		mem.ID = uuid.NewString()
	}
	now := time.Now()
	if mem.CreatedAt.IsZero() {
		mem.CreatedAt = now
	}
	mem.LastAccessed = now

	if s.embedder != nil && mem.Content != "" {
		embedding, err := s.embedder.EmbedDocument(ctx, mem.Content)
		if err != nil {
			s.logger.Warn("failed to embed memory, storing without embedding", "error", err)
		} else {
			mem.Embedding = embedding
		}
	}

	if err := s.memories.Add(ctx, mem); err != nil {
		return types.Memory{}, fmt.Errorf("add memory: %w", err)
	}
	return mem, nil
}

// SearchMemories finds matching entries by substring, ordered importance desc
// then recency desc, and touches their access stats.
func (s *Service) SearchMemories(ctx context.Context, userID, query string, kinds []types.MemoryKind, minConfidence float64, limit int) ([]types.Memory, error) {
	results, err := s.memories.Search(ctx, userID, query, kinds, minConfidence, limit)
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}
	if len(results) > 0 {
		ids := make([]string, 0, len(results))
		for _, mem := range results {
			ids = append(ids, mem.ID)
		}
		if err := s.memories.Touch(ctx, ids); err != nil {
			s.logger.Warn("failed to touch memory access stats", "error", err)
		}
	}
	return results, nil
}

// RecentMemories returns memories created within the trailing day window.
func (s *Service) RecentMemories(ctx context.Context, userID string, days, limit int) ([]types.Memory, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	results, err := s.memories.Recent(ctx, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent memories: %w", err)
	}
	return results, nil
}

// SearchSimilarMemories ranks stored memories by embedding similarity blended
// with importance. It returns nil when no embedder is configured.
func (s *Service) SearchSimilarMemories(ctx context.Context, userID, query string, topK int, threshold float64) ([]SimilarMemory, error) {
	if s.embedder == nil {
		return nil, nil
	}
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.memories.SearchSimilar(ctx, userID, embedding, topK, threshold)
	if err != nil {
		return nil, fmt.Errorf("search similar memories: %w", err)
	}
	return results, nil
}

// TrackEmotion folds one occurrence into the user's pattern for the label:
// running intensity mean, bounded trigger set, and hour histogram.
func (s *Service) TrackEmotion(ctx context.Context, userID string, label types.EmotionLabel, intensity float64, trigger string) error {
	if !label.Valid() {
		return fmt.Errorf("invalid emotion label %q", label)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	pattern, found, err := s.patterns.Get(ctx, userID, label)
	if err != nil {
		return fmt.Errorf("get emotional pattern: %w", err)
	}
	if !found {
		pattern = types.EmotionalPattern{UserID: userID, Emotion: label}
	}

	var triggers []string
	if trigger != "" {
		triggers = ExtractKeywords(trigger, 5)
	}
	pattern.Record(intensity, triggers, time.Now())

	if err := s.patterns.Upsert(ctx, pattern); err != nil {
		return fmt.Errorf("save emotional pattern: %w", err)
	}
	return nil
}

// UpdateConversation appends one exchange to the user's bounded conversation
// window and maintains topics and the emotion trajectory.
func (s *Service) UpdateConversation(ctx context.Context, userID, sessionID, userText, replyText string, emotion types.EmotionLabel) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	conversation, found, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get conversation: %w", err)
	}
	if !found {
		conversation = types.Conversation{
			UserID:    userID,
			SessionID: sessionID,
			StartedAt: time.Now(),
		}
	}
	if sessionID != "" {
		conversation.SessionID = sessionID
	}

	conversation.Append(types.Turn{
		User:      userText,
		Assistant: replyText,
		Emotion:   emotion,
		Timestamp: time.Now(),
	}, ExtractKeywords(userText, 5))

	if err := s.conversations.Save(ctx, conversation); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// GetConversation returns the current conversation context, if any.
func (s *Service) GetConversation(ctx context.Context, userID string) (types.Conversation, bool, error) {
	return s.conversations.Get(ctx, userID)
}

// GetContextSummary formats recent turns, topics, and the recent emotion
// histogram for prompt injection. Empty when the user has no history.
func (s *Service) GetContextSummary(ctx context.Context, userID string, maxTurns int) (string, error) {
	conversation, found, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get conversation: %w", err)
	}
	if !found || len(conversation.Turns) == 0 {
		return "", nil
	}
	if maxTurns <= 0 {
		maxTurns = 3
	}

	var sb strings.Builder
	sb.WriteString("Recent conversation:\n")
	for _, turn := range conversation.RecentTurns(maxTurns) {
		sb.WriteString("User: " + truncate(turn.User, 100) + "\n")
		sb.WriteString("You: " + truncate(turn.Assistant, 100) + "\n")
	}

	if len(conversation.Topics) > 0 {
		topics := conversation.Topics
		if len(topics) > 5 {
			topics = topics[len(topics)-5:]
		}
		sb.WriteString("\nDiscussed topics: " + strings.Join(topics, ", "))
	}

	if len(conversation.Trajectory) > 0 {
		recent := conversation.Trajectory
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		counts := make(map[types.EmotionLabel]int)
		for _, label := range recent {
			counts[label]++
		}
		type entry struct {
			label types.EmotionLabel
			count int
		}
		ranked := make([]entry, 0, len(counts))
		for label, count := range counts {
			ranked = append(ranked, entry{label, count})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].count != ranked[j].count {
				return ranked[i].count > ranked[j].count
			}
			return ranked[i].label < ranked[j].label
		})
		if len(ranked) > 2 {
			ranked = ranked[:2]
		}
		parts := make([]string, 0, len(ranked))
		for _, e := range ranked {
			parts = append(parts, fmt.Sprintf("%s (%dx)", e.label, e.count))
		}
		sb.WriteString("\nRecent emotions: " + strings.Join(parts, ", "))
	}

	return sb.String(), nil
}

// GetEmotionSummary aggregates the user's tracked patterns into a summary.
// It returns false when no patterns are tracked yet.
func (s *Service) GetEmotionSummary(ctx context.Context, userID string) (EmotionSummary, bool, error) {
	patterns, err := s.patterns.List(ctx, userID)
	if err != nil {
		return EmotionSummary{}, false, fmt.Errorf("list emotional patterns: %w", err)
	}
	if len(patterns) == 0 {
		return EmotionSummary{}, false, nil
	}

	total := 0
	for _, p := range patterns {
		total += p.Frequency
	}
	if total == 0 {
		return EmotionSummary{}, false, nil
	}

	distribution := make(map[types.EmotionLabel]float64, len(patterns))
	var dominant types.EmotionLabel
	best := -1.0
	for _, p := range patterns {
		share := float64(p.Frequency) / float64(total) * 100
		distribution[p.Emotion] = share
		if share > best {
			best = share
			dominant = p.Emotion
		}
	}

	var positive, negative float64
	for label, share := range distribution {
		if label.Positive() {
			positive += share
		}
		if label.Negative() {
			negative += share
		}
	}
	trend := "stable"
	if positive > negative*1.5 {
		trend = "improving"
	} else if negative > positive*1.5 {
		trend = "declining"
	}

	var notable []string
	for _, p := range patterns {
		if p.Frequency >= 5 {
			notable = append(notable, fmt.Sprintf("Frequent %s (%d times)", p.Emotion, p.Frequency))
		}
		if len(p.Triggers) > 0 {
			shown := p.Triggers
			if len(shown) > 3 {
				shown = shown[:3]
			}
			notable = append(notable, fmt.Sprintf("%s triggers: %s", p.Emotion, strings.Join(shown, ", ")))
		}
	}

	return EmotionSummary{
		UserID:          userID,
		DominantEmotion: dominant,
		Distribution:    distribution,
		MoodTrend:       trend,
		NotablePatterns: notable,
	}, true, nil
}

var keywordRe = regexp.MustCompile(`\b\w+\b`)

var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "with": {}, "to": {}, "for": {},
	"of": {}, "as": {}, "i": {}, "you": {}, "my": {}, "me": {},
}

// ExtractKeywords pulls up to max frequent non-stopword terms from text.
func ExtractKeywords(text string, max int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, word := range keywordRe.FindAllString(strings.ToLower(text), -1) {
		if len(word) <= 3 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	// Stable order: by count desc, then first appearance.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > max {
		order = order[:max]
	}
	return order
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
