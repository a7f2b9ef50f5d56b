package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/navin5447/Edgesoul/internal/types"
)

// conversationModel maps to the conversation_contexts table, one row per
// user.
type conversationModel struct {
	UserID    string `gorm:"primaryKey"`
	SessionID string
	// Turns/Topics/Trajectory are bounded windows, stored as JSONB.
	Turns          json.RawMessage `gorm:"type:jsonb"`
	Topics         json.RawMessage `gorm:"type:jsonb"`
	Trajectory     json.RawMessage `gorm:"type:jsonb"`
	CurrentEmotion string
	StartedAt      time.Time
	LastActivity   time.Time
}

func (conversationModel) TableName() string {
	return "conversation_contexts"
}

// ConversationRepo accesses conversation context data.
type ConversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo returns a ConversationRepo.
func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Get(ctx context.Context, userID string) (types.Conversation, bool, error) {
	var record conversationModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Conversation{}, false, nil
	}
	if err != nil {
		return types.Conversation{}, false, fmt.Errorf("failed to query conversation: %w", err)
	}
	return conversationFromModel(record), true, nil
}

func (r *ConversationRepo) Save(ctx context.Context, conversation types.Conversation) error {
	turns, err := marshalJSON(conversation.Turns)
	if err != nil {
		return fmt.Errorf("failed to encode turns: %w", err)
	}
	topics, err := marshalJSON(conversation.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}
	trajectory, err := marshalJSON(conversation.Trajectory)
	if err != nil {
		return fmt.Errorf("failed to encode trajectory: %w", err)
	}

	record := conversationModel{
		UserID:         conversation.UserID,
		SessionID:      conversation.SessionID,
		Turns:          turns,
		Topics:         topics,
		Trajectory:     trajectory,
		CurrentEmotion: string(conversation.CurrentEmotion),
		StartedAt:      conversation.StartedAt,
		LastActivity:   conversation.LastActivity,
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

func conversationFromModel(record conversationModel) types.Conversation {
	var turns []types.Turn
	var topics []string
	var trajectory []types.EmotionLabel
	_ = unmarshalJSON(record.Turns, &turns)
	_ = unmarshalJSON(record.Topics, &topics)
	_ = unmarshalJSON(record.Trajectory, &trajectory)
	return types.Conversation{
		UserID:         record.UserID,
		SessionID:      record.SessionID,
		Turns:          turns,
		Topics:         topics,
		Trajectory:     trajectory,
		CurrentEmotion: types.EmotionLabel(record.CurrentEmotion),
		StartedAt:      record.StartedAt,
		LastActivity:   record.LastActivity,
	}
}
