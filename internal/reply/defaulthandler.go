package reply

import "github.com/navin5447/Edgesoul/internal/types"

// handleDefault asks for clarification. It never calls the generation
// backend and its result is never tracked as an emotional signal.
func (e *Engine) handleDefault() types.HandlerResult {
	return types.HandlerResult{
		Text:               clarificationPrompt,
		Source:             types.StrategyDefault,
		Model:              "default",
		NeedsClarification: true,
	}
}
