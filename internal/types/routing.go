package types

// ContextTag classifies message intent independently of emotion.
type ContextTag string

const (
	ContextGratitude           ContextTag = "gratitude"
	ContextClarification       ContextTag = "clarification"
	ContextEmotionalLearning   ContextTag = "emotional_learning"
	ContextGreeting            ContextTag = "greeting"
	ContextPracticalRequest    ContextTag = "practical_request"
	ContextCasualConversation  ContextTag = "casual_conversation"
	ContextQuestion            ContextTag = "question"
	ContextEmotionalExpression ContextTag = "emotional_expression"
)

// Strategy is the high-level response mode a message is routed to.
type Strategy string

const (
	StrategyEmotionalSupport Strategy = "emotional_support"
	StrategyKnowledgeFocused Strategy = "knowledge_focused"
	StrategyHybrid           Strategy = "hybrid"
	StrategyCasualChat       Strategy = "casual_chat"
	StrategyDefault          Strategy = "default"
)

// HandlerResult is what a strategy handler produces before personality
// adaptation. Source records which path generated the text.
type HandlerResult struct {
	Text   string
	Source Strategy
	Model  string // model name, or "fallback"/"instant_knowledge_base"/"template_fallback"

	// Optional per-handler diagnostics.
	EmotionAddressed   EmotionLabel
	IntensityBucket    string
	NeedsClarification bool
}
