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

// profileModel maps to the user_profiles table.
type profileModel struct {
	UserID        string `gorm:"primaryKey"`
	Name          string
	Empathy       int
	Humor         int
	Formality     int
	Verbosity     int
	Proactiveness int
	TonePreset    string
	EmojiEnabled  bool
	// Interests/Dislikes are small sets, stored as JSONB.
	Interests          json.RawMessage `gorm:"type:jsonb"`
	Dislikes           json.RawMessage `gorm:"type:jsonb"`
	TotalConversations int
	TotalMessages      int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (profileModel) TableName() string {
	return "user_profiles"
}

// ProfileRepo accesses user profile data.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo returns a ProfileRepo.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (types.UserProfile, bool, error) {
	var record profileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.UserProfile{}, false, nil
	}
	if err != nil {
		return types.UserProfile{}, false, fmt.Errorf("failed to query profile: %w", err)
	}
	return profileFromModel(record), true, nil
}

func (r *ProfileRepo) Save(ctx context.Context, profile types.UserProfile) error {
	interests, err := marshalJSON(profile.Interests)
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}
	dislikes, err := marshalJSON(profile.Dislikes)
	if err != nil {
		return fmt.Errorf("failed to encode dislikes: %w", err)
	}

	record := profileModel{
		UserID:             profile.UserID,
		Name:               profile.Name,
		Empathy:            profile.Empathy,
		Humor:              profile.Humor,
		Formality:          profile.Formality,
		Verbosity:          profile.Verbosity,
		Proactiveness:      profile.Proactiveness,
		TonePreset:         string(profile.TonePreset),
		EmojiEnabled:       profile.EmojiEnabled,
		Interests:          interests,
		Dislikes:           dislikes,
		TotalConversations: profile.TotalConversations,
		TotalMessages:      profile.TotalMessages,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func profileFromModel(record profileModel) types.UserProfile {
	var interests []string
	var dislikes []string
	_ = unmarshalJSON(record.Interests, &interests)
	_ = unmarshalJSON(record.Dislikes, &dislikes)
	return types.UserProfile{
		UserID:             record.UserID,
		Name:               record.Name,
		Empathy:            record.Empathy,
		Humor:              record.Humor,
		Formality:          record.Formality,
		Verbosity:          record.Verbosity,
		Proactiveness:      record.Proactiveness,
		TonePreset:         types.TonePreset(record.TonePreset),
		EmojiEnabled:       record.EmojiEnabled,
		Interests:          interests,
		Dislikes:           dislikes,
		TotalConversations: record.TotalConversations,
		TotalMessages:      record.TotalMessages,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}

// marshalJSON encodes a value into JSONB, returning nil for empty values.
func marshalJSON(value any) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// unmarshalJSON decodes JSONB, tolerating empty columns.
func unmarshalJSON(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
