package knowledge

import (
	"context"
	"iter"
	"math/rand"
	"strings"
	"testing"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// capturingLLM records the prompt it was asked to complete.
type capturingLLM struct {
	prompt string
	reply  string
}

func (c *capturingLLM) Name() string { return "capture-model" }

func (c *capturingLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	var sb strings.Builder
	for _, content := range req.Contents {
		for _, part := range content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	c.prompt = sb.String()
	return func(yield func(*model.LLMResponse, error) bool) {
		yield(&model.LLMResponse{Content: genai.NewContentFromText(c.reply, "model")}, nil)
	}
}

func TestInstantAnswerPythonFact(t *testing.T) {
	answer, ok := InstantAnswer("what is Python?")
	if !ok {
		t.Fatal("expected instant answer for python question")
	}
	if !strings.Contains(answer, "Python") || !strings.Contains(answer, "1991") {
		t.Fatalf("answer missing expected facts: %q", answer)
	}
}

func TestInstantAnswerSkipsCodeRequests(t *testing.T) {
	if _, ok := InstantAnswer("what is python code for fibonacci"); ok {
		t.Fatal("code requests must not hit the fact table")
	}
}

func TestInstantAnswerMissReturnsFalse(t *testing.T) {
	if _, ok := InstantAnswer("summarize the plot of war and peace"); ok {
		t.Fatal("expected no instant answer")
	}
}

func TestAskWithoutModelUsesInstantOrFallback(t *testing.T) {
	e := NewEngine(nil, "", nil)

	resp := e.Ask(t.Context(), Request{Question: "what is Python?"})
	if resp.ModelName != "instant_knowledge_base" {
		t.Fatalf("expected instant answer, got model %q", resp.ModelName)
	}

	resp = e.Ask(t.Context(), Request{Question: "something with no curated answer"})
	if resp.ModelName != "fallback" {
		t.Fatalf("expected fallback, got model %q", resp.ModelName)
	}
	if resp.Text == "" {
		t.Fatal("fallback must always return text")
	}
}

func TestAskThreadsEmotionIntoPrompt(t *testing.T) {
	llm := &capturingLLM{reply: "Take a short break and come back fresh."}
	e := NewEngine(llm, "capture-model", nil)

	resp := e.Ask(t.Context(), Request{
		Question: "how do I focus when everything goes wrong",
		Emotion:  "sadness",
	})
	if resp.ModelName != "capture-model" {
		t.Fatalf("model = %q, want capture-model", resp.ModelName)
	}
	if !strings.Contains(llm.prompt, "emotional state is: sadness") {
		t.Fatalf("prompt missing emotion hint: %q", llm.prompt)
	}

	llm.prompt = ""
	e.Ask(t.Context(), Request{Question: "how do I focus when everything goes wrong"})
	if strings.Contains(llm.prompt, "emotional state") {
		t.Fatalf("prompt has emotion hint without emotion: %q", llm.prompt)
	}
}

func TestAskThreadsToneIntoPrompt(t *testing.T) {
	llm := &capturingLLM{reply: "Happy to help with that."}
	e := NewEngine(llm, "capture-model", nil)

	e.Ask(t.Context(), Request{
		Question: "how do I focus when everything goes wrong",
		Tone:     "casual and relaxed",
	})
	if !strings.Contains(llm.prompt, "Respond in a casual and relaxed tone") {
		t.Fatalf("prompt missing tone hint: %q", llm.prompt)
	}
}

func TestAskSkipInstantBypassesCuratedAnswers(t *testing.T) {
	llm := &capturingLLM{reply: "Stress is heavy; I'm here with you."}
	e := NewEngine(llm, "capture-model", nil)

	resp := e.Ask(t.Context(), Request{Question: "how do I deal with stress", SkipInstant: true})
	if resp.ModelName != "capture-model" {
		t.Fatalf("model = %q, want capture-model", resp.ModelName)
	}

	resp = e.Ask(t.Context(), Request{Question: "how do I deal with stress"})
	if resp.ModelName != "instant_knowledge_base" {
		t.Fatalf("model = %q, want instant_knowledge_base", resp.ModelName)
	}
}

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     questionClass
	}{
		{"write a script to rename files", classCode},
		{"explain quantum entanglement", classComplex},
		{"capital of peru", classDefault},
	}
	for _, tt := range tests {
		if got := classifyQuestion(tt.question); got != tt.want {
			t.Errorf("classifyQuestion(%q) = %d, want %d", tt.question, got, tt.want)
		}
	}
}

func TestBudgetFor(t *testing.T) {
	tokens, timeout := budgetFor(classCode, 0)
	if tokens != 2000 || timeout != 90*time.Second {
		t.Fatalf("code budget = (%d, %s)", tokens, timeout)
	}
	tokens, timeout = budgetFor(classComplex, 0)
	if tokens != 800 || timeout != 75*time.Second {
		t.Fatalf("complex budget = (%d, %s)", tokens, timeout)
	}
	tokens, _ = budgetFor(classDefault, 150)
	if tokens != 150 {
		t.Fatalf("explicit budget not honored: %d", tokens)
	}
}

func TestSanitizeStripsDialogueArtifacts(t *testing.T) {
	got, ok := Sanitize("Assistant: Paris is the capital.\nUser: thanks")
	if !ok {
		t.Fatal("expected sanitized answer")
	}
	if got != "Paris is the capital." {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeStripsSpecialTokens(t *testing.T) {
	got, ok := Sanitize("<|assistant|>The answer is 42.<|end|>")
	if !ok || got != "The answer is 42." {
		t.Fatalf("got %q, ok=%v", got, ok)
	}
}

func TestSanitizeRejectsLeakedInstructions(t *testing.T) {
	if _, ok := Sanitize("As an AI language model I cannot"); ok {
		t.Fatal("leaked instructions must be rejected")
	}
}

func TestSanitizeRejectsRunawayLength(t *testing.T) {
	long := strings.Repeat("word ", 2100)
	if _, ok := Sanitize(long); ok {
		t.Fatal("overlong answers must be rejected")
	}
}

func TestRandomJokeIsDeterministicWithSeed(t *testing.T) {
	a := RandomJoke(rand.New(rand.NewSource(7)))
	b := RandomJoke(rand.New(rand.NewSource(7)))
	if a != b {
		t.Fatalf("seeded joke choice differs: %q vs %q", a, b)
	}
}
