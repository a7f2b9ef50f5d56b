// Package knowledge answers factual questions: instant curated answers first,
// then a single model attempt with sanitization, then static fallbacks.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Request is one question for the engine. Emotion and Tone, when set, become
// generation hints in the prompt.
type Request struct {
	Question    string
	Context     string
	Emotion     string
	Tone        string
	Temperature float64
	MaxTokens   int

	// SkipInstant bypasses the curated answer table. Empathetic replies
	// must be generated or templated, never looked up.
	SkipInstant bool
}

// Response carries the answer and where it came from.
type Response struct {
	Text       string
	ModelName  string
	TokensUsed int
}

// questionClass drives token budget and timeout selection.
type questionClass int

const (
	classDefault questionClass = iota
	classComplex
	classCode
)

var codeKeywords = []string{
	"code", "program", "python", "javascript", "java", "function",
	"write a", "create a", "build a", "develop", "script",
	" api", "algorithm", "class", "method", "loop",
}

var complexKeywords = []string{
	"explain", "why", "how does", "how can", "compare",
	"difference between", "analyze", "what is", "tell me about",
	"describe", "discuss", "elaborate",
	"want to learn", "learn something", "teach me", "i want to",
}

// Engine generates factual answers through a model.LLM backend.
type Engine struct {
	llm       model.LLM
	modelName string
	logger    *slog.Logger
}

// NewEngine returns an Engine. llm may be nil; every Ask then resolves from
// the instant table or the static fallbacks.
func NewEngine(llm model.LLM, modelName string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{llm: llm, modelName: modelName, logger: logger}
}

// Ask answers a question. It makes at most one model attempt; any failure or
// rejected output resolves to a static fallback, never an error the caller
// must handle.
func (e *Engine) Ask(ctx context.Context, req Request) Response {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return e.fallback(question)
	}

	if !req.SkipInstant {
		if answer, ok := InstantAnswer(question); ok {
			return Response{
				Text:       answer,
				ModelName:  "instant_knowledge_base",
				TokensUsed: len(strings.Fields(answer)),
			}
		}
	}

	if e.llm == nil {
		return e.fallback(question)
	}

	class := classifyQuestion(question)
	tokens, timeout := budgetFor(class, req.MaxTokens)

	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	answer, err := e.generate(genCtx, buildPrompt(question, req, class), req.Temperature, tokens)
	if err != nil {
		e.logger.Warn("knowledge generation failed", "error", err)
		return e.fallback(question)
	}

	answer, ok := Sanitize(answer)
	if !ok {
		e.logger.Warn("knowledge answer rejected by sanitizer", "question", question)
		return e.fallback(question)
	}

	return Response{
		Text:       answer,
		ModelName:  e.modelName,
		TokensUsed: len(strings.Fields(answer)),
	}
}

func (e *Engine) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if temperature <= 0 {
		temperature = 0.2
	}
	temp := float32(temperature)
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, "user"),
		},
		Config: &genai.GenerateContentConfig{
			Temperature:     &temp,
			MaxOutputTokens: int32(maxTokens),
		},
	}

	seq := e.llm.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || resp.Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (e *Engine) fallback(question string) Response {
	text := Fallback(question)
	return Response{
		Text:       text,
		ModelName:  "fallback",
		TokensUsed: len(strings.Fields(text)),
	}
}

func classifyQuestion(question string) questionClass {
	lower := strings.ToLower(question)
	if matchesAny(lower, codeKeywords) {
		return classCode
	}
	if matchesAny(lower, complexKeywords) {
		return classComplex
	}
	return classDefault
}

// budgetFor picks token budget and timeout per question class. An explicit
// caller budget overrides the class default.
func budgetFor(class questionClass, requested int) (int, time.Duration) {
	switch class {
	case classCode:
		if requested <= 0 {
			requested = 2000
		}
		return requested, 90 * time.Second
	case classComplex:
		if requested <= 0 {
			requested = 800
		}
		return requested, 75 * time.Second
	default:
		if requested <= 0 {
			requested = 600
		}
		return requested, 60 * time.Second
	}
}

func buildPrompt(question string, req Request, class questionClass) string {
	var sb strings.Builder
	if req.Emotion != "" && req.Emotion != "neutral" {
		sb.WriteString("The user's emotional state is: ")
		sb.WriteString(req.Emotion)
		sb.WriteString("\nAnswer while being sensitive to their emotional state.\n")
	}
	if req.Tone != "" {
		sb.WriteString("Respond in a ")
		sb.WriteString(req.Tone)
		sb.WriteString(" tone.\n")
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	if req.Context != "" {
		sb.WriteString(req.Context)
		sb.WriteString("\n\n")
	}
	if class == classCode {
		sb.WriteString(question)
		sb.WriteString("\n\nProvide the COMPLETE, working code with ALL necessary parts. Include comments and examples. Do NOT stop in the middle - give the FULL solution.")
		return sb.String()
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}

var specialTokenRe = regexp.MustCompile(`<\|[^|]+\|>`)

var dialoguePrefixes = []string{"Assistant:", "User:", "Human:", "AI:", "EdgeSoul:"}

var dialogueMarkers = []string{"\nUser:", "\nAssistant:", "\nHuman:", "\nAI:"}

var leakIndicators = []string{
	"I'm EdgeSoul, a knowledgeable and helpful AI assistant",
	"Provide accurate, factual, and concise answers",
	"system_instructions",
	"As an AI language model",
	"I'm an AI assistant",
}

// Sanitize cleans raw model output. The second return is false when the
// output must be rejected entirely (instruction leakage, runaway length).
func Sanitize(answer string) (string, bool) {
	answer = specialTokenRe.ReplaceAllString(answer, "")
	answer = strings.TrimSpace(answer)

	for _, prefix := range dialoguePrefixes {
		if strings.HasPrefix(answer, prefix) {
			answer = strings.TrimSpace(strings.TrimPrefix(answer, prefix))
		}
	}

	// Multi-turn echo: keep only the first turn.
	for _, marker := range dialogueMarkers {
		if idx := strings.Index(answer, marker); idx >= 0 {
			answer = strings.TrimSpace(answer[:idx])
			break
		}
	}

	for _, indicator := range leakIndicators {
		if strings.Contains(answer, indicator) {
			return "", false
		}
	}
	if len(strings.Fields(answer)) > 2000 {
		return "", false
	}
	if answer == "" {
		return "", false
	}
	return answer, true
}
