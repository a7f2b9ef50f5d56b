// Package reply turns one user message into an emotion-aware reply: detect,
// correct, route to a strategy handler, adapt for personality, then persist
// what the exchange taught us about the user.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/navin5447/Edgesoul/internal/classify"
	"github.com/navin5447/Edgesoul/internal/emotion"
	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/memory"
	"github.com/navin5447/Edgesoul/internal/types"
)

// EmotionDetector produces a raw emotion detection for a message.
type EmotionDetector interface {
	Detect(ctx context.Context, text string) (types.Detection, error)
}

// Engine is the reply pipeline. All failures inside it degrade: a reply is
// always produced, and persistence errors never surface to the caller.
type Engine struct {
	detector EmotionDetector
	keywords EmotionDetector

	corrector *emotion.Corrector
	contexts  *classify.ContextClassifier
	knowledge *knowledge.Engine
	memory    *memory.Service
	adapter   *PersonalityAdapter

	rng    *rand.Rand
	logger *slog.Logger
}

// NewEngine wires the pipeline. detector may be nil; detection then runs on
// the keyword classifier alone. rng may be nil for a time-seeded source.
func NewEngine(detector EmotionDetector, knowledgeEngine *knowledge.Engine, memoryService *memory.Service, rng *rand.Rand, logger *slog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		detector:  detector,
		keywords:  emotion.NewKeywordClassifier(),
		corrector: emotion.NewCorrector(),
		contexts:  classify.NewContextClassifier(),
		knowledge: knowledgeEngine,
		memory:    memoryService,
		adapter:   NewPersonalityAdapter(rng),
		rng:       rng,
		logger:    logger,
	}
}

// GenerateReply runs the full pipeline for one message.
func (e *Engine) GenerateReply(ctx context.Context, userID, message string) (types.Reply, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		// Validation failure: canned prompt, nothing persisted.
		return types.Reply{
			Text:     emptyMessagePrompt,
			Strategy: types.StrategyDefault,
			Metadata: types.ReplyMetadata{
				ProcessingTime: time.Since(start),
				Reasoning:      "empty message",
				ModelUsed:      "validation",
				Timestamp:      time.Now(),
			},
		}, nil
	}

	profile, contextSummary, detection := e.gather(ctx, userID, trimmed)

	result := e.corrector.Correct(detection, trimmed)
	if result.Context != types.ContextClarification {
		result.Context = e.contexts.Classify(trimmed)
	}

	strategy := classify.Route(trimmed, result, result.Context)

	handled := e.dispatch(ctx, strategy, trimmed, result, profile, contextSummary)

	text := e.adapter.Adapt(handled.Text, profile, result.IsEmotional)

	e.persist(ctx, userID, trimmed, text, result, handled, contextSummary)

	e.logger.Info("reply generated",
		"user_id", userID,
		"strategy", strategy,
		"emotion", result.Primary,
		"confidence", result.Confidence,
		"model", handled.Model,
	)

	return types.Reply{
		Text:     text,
		Strategy: strategy,
		Emotion:  result,
		Metadata: types.ReplyMetadata{
			ProcessingTime: time.Since(start),
			Reasoning:      result.Reasoning,
			ModelUsed:      handled.Model,
			Timestamp:      time.Now(),
		},
	}, nil
}

// gather runs the profile read, context summary, and emotion detection in
// parallel. Each branch degrades on error instead of failing the group.
func (e *Engine) gather(ctx context.Context, userID, text string) (types.UserProfile, string, types.Detection) {
	var (
		profile   types.UserProfile
		summary   string
		detection types.Detection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.memory.GetOrCreateProfile(gctx, userID)
		if err != nil {
			e.logger.Warn("profile load failed, using defaults", "user_id", userID, "error", err)
			p = types.NewUserProfile(userID)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		s, err := e.memory.GetContextSummary(gctx, userID, 3)
		if err != nil {
			e.logger.Warn("context summary failed", "user_id", userID, "error", err)
			s = ""
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		detection = e.detect(gctx, text)
		return nil
	})
	_ = g.Wait()

	return profile, summary, detection
}

// detect tries the primary detector, then the keyword classifier, then the
// fixed neutral degradation.
func (e *Engine) detect(ctx context.Context, text string) types.Detection {
	if e.detector != nil {
		d, err := e.detector.Detect(ctx, text)
		if err == nil {
			return d
		}
		e.logger.Warn("emotion detection failed, falling back to keywords", "error", err)
	}
	d, err := e.keywords.Detect(ctx, text)
	if err != nil {
		e.logger.Warn("keyword detection failed", "error", err)
		return types.NeutralDetection()
	}
	return d
}

func (e *Engine) dispatch(ctx context.Context, strategy types.Strategy, text string, result types.EmotionResult, profile types.UserProfile, contextSummary string) types.HandlerResult {
	switch strategy {
	case types.StrategyEmotionalSupport:
		return e.handleEmotionalSupport(ctx, text, result, profile)
	case types.StrategyKnowledgeFocused:
		return e.handleKnowledge(ctx, text, result, contextSummary)
	case types.StrategyHybrid:
		return e.handleHybrid(ctx, text, result, profile)
	case types.StrategyCasualChat:
		return e.handleCasual(ctx, text, result, profile, contextSummary)
	default:
		return e.handleDefault()
	}
}

// persist records what the exchange taught us. All writes are best effort:
// failures are logged and swallowed so a reply still reaches the user.
func (e *Engine) persist(ctx context.Context, userID, userText, replyText string, result types.EmotionResult, handled types.HandlerResult, contextSummary string) {
	newConversation := contextSummary == ""
	if err := e.memory.RecordUsage(ctx, userID, newConversation); err != nil {
		e.logger.Warn("usage update failed", "user_id", userID, "error", err)
	}

	if learned, ok, err := e.memory.LearnPreference(ctx, userID, userText); err != nil {
		e.logger.Warn("preference learning failed", "user_id", userID, "error", err)
	} else if ok {
		e.logger.Info("learned preference", "user_id", userID, "content", learned.Content)
	}

	// Clarifications and default replies carry no emotional signal worth
	// recording.
	if handled.Source != types.StrategyDefault && result.Context != types.ContextClarification {
		if err := e.memory.TrackEmotion(ctx, userID, result.Primary, result.Intensity, userText); err != nil {
			e.logger.Warn("emotion tracking failed", "user_id", userID, "error", err)
		}
	}

	if err := e.memory.UpdateConversation(ctx, userID, userID, userText, replyText, result.Primary); err != nil {
		e.logger.Warn("conversation update failed", "user_id", userID, "error", err)
	}
}

// lastTurnContext formats up to n recent turns for prompt injection,
// truncating each side to keep prompts short.
func (e *Engine) lastTurnContext(ctx context.Context, userID string, n, maxChars int) string {
	conversation, found, err := e.memory.GetConversation(ctx, userID)
	if err != nil || !found {
		return ""
	}
	var sb strings.Builder
	for _, turn := range conversation.RecentTurns(n) {
		if turn.User != "" {
			fmt.Fprintf(&sb, "User: %s\n", clip(turn.User, maxChars))
		}
		if turn.Assistant != "" {
			fmt.Fprintf(&sb, "Bot: %s\n", clip(turn.Assistant, maxChars))
		}
	}
	return strings.TrimSpace(sb.String())
}

func clip(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
