package reply

import (
	"context"
	"errors"
	"iter"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/memory"
	"github.com/navin5447/Edgesoul/internal/types"
)

type fakeLLM struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	fail    bool
}

func (f *fakeLLM) Name() string { return "fake-model" }

func (f *fakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.mu.Lock()
	f.calls++
	for _, content := range req.Contents {
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				f.prompts = append(f.prompts, part.Text)
			}
		}
	}
	f.mu.Unlock()
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.fail {
			yield(nil, errors.New("backend down"))
			return
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(f.reply, "model")}, nil)
	}
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type stubProfiles struct {
	mu       sync.Mutex
	profiles map[string]types.UserProfile
	saves    int
}

func (s *stubProfiles) Get(_ context.Context, userID string) (types.UserProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *stubProfiles) Save(_ context.Context, profile types.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	s.saves++
	return nil
}

type stubMemories struct {
	mu    sync.Mutex
	added []types.Memory
}

func (s *stubMemories) Add(_ context.Context, mem types.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, mem)
	return nil
}

func (s *stubMemories) Search(context.Context, string, string, []types.MemoryKind, float64, int) ([]types.Memory, error) {
	return nil, nil
}

func (s *stubMemories) Recent(context.Context, string, time.Time, int) ([]types.Memory, error) {
	return nil, nil
}

func (s *stubMemories) Touch(context.Context, []string) error { return nil }

func (s *stubMemories) SearchSimilar(context.Context, string, []float32, int, float64) ([]memory.SimilarMemory, error) {
	return nil, nil
}

type stubPatterns struct {
	mu       sync.Mutex
	patterns map[string]types.EmotionalPattern
	upserts  int
}

func patternKey(userID string, emotion types.EmotionLabel) string {
	return userID + "/" + string(emotion)
}

func (s *stubPatterns) Get(_ context.Context, userID string, emotion types.EmotionLabel) (types.EmotionalPattern, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patterns[patternKey(userID, emotion)]
	return p, ok, nil
}

func (s *stubPatterns) Upsert(_ context.Context, pattern types.EmotionalPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[patternKey(pattern.UserID, pattern.Emotion)] = pattern
	s.upserts++
	return nil
}

func (s *stubPatterns) List(_ context.Context, userID string) ([]types.EmotionalPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.EmotionalPattern
	for _, p := range s.patterns {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubConversations struct {
	mu            sync.Mutex
	conversations map[string]types.Conversation
	saves         int
}

func (s *stubConversations) Get(_ context.Context, userID string) (types.Conversation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[userID]
	return c, ok, nil
}

func (s *stubConversations) Save(_ context.Context, conversation types.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversation.UserID] = conversation
	s.saves++
	return nil
}

type testEnv struct {
	engine        *Engine
	llm           *fakeLLM
	profiles      *stubProfiles
	patterns      *stubPatterns
	conversations *stubConversations
}

func newTestEnv(t *testing.T, llm *fakeLLM) *testEnv {
	t.Helper()
	profiles := &stubProfiles{profiles: make(map[string]types.UserProfile)}
	patterns := &stubPatterns{patterns: make(map[string]types.EmotionalPattern)}
	conversations := &stubConversations{conversations: make(map[string]types.Conversation)}
	svc := memory.NewService(profiles, &stubMemories{}, patterns, conversations, nil, nil)

	var backend model.LLM
	if llm != nil {
		backend = llm
	}
	ke := knowledge.NewEngine(backend, "fake-model", nil)

	rng := rand.New(rand.NewSource(1))
	return &testEnv{
		engine:        NewEngine(nil, ke, svc, rng, nil),
		llm:           llm,
		profiles:      profiles,
		patterns:      patterns,
		conversations: conversations,
	}
}

func TestInstantAnswerNeverCallsBackend(t *testing.T) {
	llm := &fakeLLM{reply: "should not be used"}
	env := newTestEnv(t, llm)

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "what is Python?")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyKnowledgeFocused {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyKnowledgeFocused)
	}
	if !strings.Contains(reply.Text, "Python") || !strings.Contains(reply.Text, "1991") {
		t.Fatalf("unexpected answer: %q", reply.Text)
	}
	if got := llm.callCount(); got != 0 {
		t.Fatalf("backend called %d times, want 0", got)
	}
	if reply.Metadata.ModelUsed != "instant_knowledge_base" {
		t.Fatalf("model = %q, want instant_knowledge_base", reply.Metadata.ModelUsed)
	}
}

func TestFrustrationRoutesToEmotionalSupport(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{fail: true})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I'm so frustrated, this bug won't fix")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyEmotionalSupport {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyEmotionalSupport)
	}
	if reply.Emotion.Primary != types.EmotionAnger {
		t.Fatalf("emotion = %s, want anger", reply.Emotion.Primary)
	}
	if reply.Metadata.ModelUsed != "template_fallback" {
		t.Fatalf("model = %q, want template_fallback", reply.Metadata.ModelUsed)
	}
	if reply.Text == "" {
		t.Fatal("empty reply text")
	}
}

func TestDistressMessageGetsEmpathyNotCuratedAnswer(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{fail: true})

	// "deal with stress" matches a curated how-to entry, but a distressed
	// message must get an empathetic reply, not a numbered list.
	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I can't deal with stress, I'm breaking down")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyEmotionalSupport {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyEmotionalSupport)
	}
	if reply.Metadata.ModelUsed == "instant_knowledge_base" {
		t.Fatal("distress reply resolved from the curated answer table")
	}
	if reply.Metadata.ModelUsed != "template_fallback" {
		t.Fatalf("model = %q, want template_fallback", reply.Metadata.ModelUsed)
	}
}

func TestEmotionHintReachesBackendPrompt(t *testing.T) {
	llm := &fakeLLM{reply: "I'm here for you, always."}
	env := newTestEnv(t, llm)

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I feel so alone and nobody understands me at all today")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyEmotionalSupport {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyEmotionalSupport)
	}
	prompt := llm.lastPrompt()
	if !strings.Contains(prompt, "emotional state is: sadness") {
		t.Fatalf("prompt missing emotion hint: %q", prompt)
	}
}

func TestToneHintFollowsProfile(t *testing.T) {
	llm := &fakeLLM{reply: "Got it, just a question then!"}
	env := newTestEnv(t, llm)

	profile := types.NewUserProfile("u1")
	profile.Formality = 10
	profile.Humor = 90
	env.profiles.profiles["u1"] = profile

	if _, err := env.engine.GenerateReply(t.Context(), "u1", "I'm not sad, just asking about the weather"); err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if prompt := llm.lastPrompt(); !strings.Contains(prompt, "very casual and playful with humor") {
		t.Fatalf("prompt missing tone hint: %q", prompt)
	}
}

func TestNegationRoutesToCasualChat(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "Got it, just a question then. What's the weather like where you are?"})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I'm not sad, just asking about the weather")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyCasualChat {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyCasualChat)
	}
	if reply.Emotion.Primary != types.EmotionNeutral {
		t.Fatalf("emotion = %s, want neutral", reply.Emotion.Primary)
	}
	if reply.Emotion.Context != types.ContextClarification {
		t.Fatalf("context = %s, want clarification", reply.Emotion.Context)
	}
	// Clarifications carry no emotional signal to record.
	if env.patterns.upserts != 0 {
		t.Fatalf("pattern upserts = %d, want 0", env.patterns.upserts)
	}
}

func TestLowVerbosityTruncatesToTwoSentences(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{fail: true})

	profile := types.NewUserProfile("u1")
	profile.Verbosity = 15
	env.profiles.profiles["u1"] = profile

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I feel so alone and nobody understands me at all today")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyEmotionalSupport {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyEmotionalSupport)
	}
	if got := len(strings.Split(reply.Text, ". ")); got > 2 {
		t.Fatalf("reply has %d sentences, want at most 2: %q", got, reply.Text)
	}
}

func TestEmptyMessageSkipsAllWrites(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "unused"})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "   ")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Text != emptyMessagePrompt {
		t.Fatalf("text = %q, want canned prompt", reply.Text)
	}
	if reply.Strategy != types.StrategyDefault {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyDefault)
	}
	if env.profiles.saves != 0 || env.patterns.upserts != 0 || env.conversations.saves != 0 {
		t.Fatalf("writes happened on validation failure: profiles=%d patterns=%d conversations=%d",
			env.profiles.saves, env.patterns.upserts, env.conversations.saves)
	}
}

func TestHybridJoyfulLearningRequest(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "Python is a versatile language. Start with variables and loops."})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I'm so happy and excited, I want to learn python programming")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyHybrid {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyHybrid)
	}
	if !strings.Contains(reply.Text, "I love your enthusiasm") {
		t.Fatalf("missing joy opener: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "positive energy") {
		t.Fatalf("missing joy closing: %q", reply.Text)
	}
}

func TestHybridVagueTopicAsksForClarification(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "unused"})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "I'm so happy and excited, I want to learn something new")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyHybrid {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyHybrid)
	}
	if reply.Metadata.ModelUsed != "emotion_aware_clarification" {
		t.Fatalf("model = %q, want emotion_aware_clarification", reply.Metadata.ModelUsed)
	}
	if env.llm.callCount() != 0 {
		t.Fatalf("backend called for a vague topic")
	}
}

func TestGreetingFastPath(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "unused"})

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "hey")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply.Strategy != types.StrategyCasualChat {
		t.Fatalf("strategy = %s, want %s", reply.Strategy, types.StrategyCasualChat)
	}
	if env.llm.callCount() != 0 {
		t.Fatalf("backend called for a one-word greeting")
	}
	found := false
	for _, candidate := range toneStyles[types.ToneBalanced].Greetings {
		if reply.Text == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("greeting %q not from the balanced pool", reply.Text)
	}
}

func TestProactiveProfileGetsFollowUpQuestion(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "unused"})

	profile := types.NewUserProfile("u1")
	profile.Proactiveness = 80
	env.profiles.profiles["u1"] = profile

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "what is Python?")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	appended := false
	for _, addition := range proactiveAdditions {
		if strings.HasSuffix(reply.Text, addition) {
			appended = true
			break
		}
	}
	if !appended {
		t.Fatalf("no proactive follow-up appended: %q", reply.Text)
	}
}

func TestEmojiStrippedWhenDisabled(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "unused"})

	profile := types.NewUserProfile("u1")
	profile.EmojiEnabled = false
	env.profiles.profiles["u1"] = profile

	reply, err := env.engine.GenerateReply(t.Context(), "u1", "hey what should i learn")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	for _, r := range reply.Text {
		if r >= 0x1F300 {
			t.Fatalf("emoji %q survived stripping: %q", r, reply.Text)
		}
	}
}

func TestReplyRecordsEmotionPattern(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{fail: true})

	if _, err := env.engine.GenerateReply(t.Context(), "u1", "I feel so alone and nobody understands me at all today"); err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	pattern, ok, err := env.patterns.Get(t.Context(), "u1", types.EmotionSadness)
	if err != nil || !ok {
		t.Fatalf("pattern missing after reply: ok=%v err=%v", ok, err)
	}
	if pattern.Frequency != 1 {
		t.Fatalf("frequency = %d, want 1", pattern.Frequency)
	}
}

func TestConversationUpdatedAfterReply(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{reply: "Nice to meet you! What would you like to talk about today with me?"})

	if _, err := env.engine.GenerateReply(t.Context(), "u1", "hello there friend, how has your week been going"); err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	conversation, ok, err := env.conversations.Get(t.Context(), "u1")
	if err != nil || !ok {
		t.Fatalf("conversation missing after reply: ok=%v err=%v", ok, err)
	}
	if len(conversation.Turns) != 1 {
		t.Fatalf("turns = %d, want 1", len(conversation.Turns))
	}
	if conversation.Turns[0].User == "" || conversation.Turns[0].Assistant == "" {
		t.Fatalf("incomplete turn: %+v", conversation.Turns[0])
	}
}
