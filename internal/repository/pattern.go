package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navin5447/Edgesoul/internal/types"
)

// patternModel maps to the emotional_patterns table, one row per
// (user, emotion).
type patternModel struct {
	UserID       string `gorm:"primaryKey"`
	Emotion      string `gorm:"primaryKey"`
	Frequency    int
	AvgIntensity float64
	// Triggers and TimeOfDay are bounded sets, stored as JSONB.
	Triggers       json.RawMessage `gorm:"type:jsonb"`
	TimeOfDay      json.RawMessage `gorm:"type:jsonb"`
	Trend          string
	LastOccurrence time.Time
}

func (patternModel) TableName() string {
	return "emotional_patterns"
}

// PatternRepo accesses emotional pattern data.
type PatternRepo struct {
	db *gorm.DB
}

// NewPatternRepo returns a PatternRepo.
func NewPatternRepo(db *gorm.DB) *PatternRepo {
	return &PatternRepo{db: db}
}

func (r *PatternRepo) Get(ctx context.Context, userID string, emotion types.EmotionLabel) (types.EmotionalPattern, bool, error) {
	var record patternModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND emotion = ?", userID, string(emotion)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.EmotionalPattern{}, false, nil
	}
	if err != nil {
		return types.EmotionalPattern{}, false, fmt.Errorf("failed to query emotional pattern: %w", err)
	}
	return patternFromModel(record), true, nil
}

func (r *PatternRepo) Upsert(ctx context.Context, pattern types.EmotionalPattern) error {
	triggers, err := marshalJSON(pattern.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}
	timeOfDay, err := marshalJSON(pattern.TimeOfDay)
	if err != nil {
		return fmt.Errorf("failed to encode time histogram: %w", err)
	}

	record := patternModel{
		UserID:         pattern.UserID,
		Emotion:        string(pattern.Emotion),
		Frequency:      pattern.Frequency,
		AvgIntensity:   pattern.AvgIntensity,
		Triggers:       triggers,
		TimeOfDay:      timeOfDay,
		Trend:          pattern.Trend,
		LastOccurrence: pattern.LastOccurrence,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "emotion"}},
			UpdateAll: true,
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert emotional pattern: %w", err)
	}
	return nil
}

func (r *PatternRepo) List(ctx context.Context, userID string) ([]types.EmotionalPattern, error) {
	var records []patternModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list emotional patterns: %w", err)
	}

	results := make([]types.EmotionalPattern, 0, len(records))
	for _, record := range records {
		results = append(results, patternFromModel(record))
	}
	return results, nil
}

func patternFromModel(record patternModel) types.EmotionalPattern {
	var triggers []string
	var timeOfDay map[string]int
	_ = unmarshalJSON(record.Triggers, &triggers)
	_ = unmarshalJSON(record.TimeOfDay, &timeOfDay)
	return types.EmotionalPattern{
		UserID:         record.UserID,
		Emotion:        types.EmotionLabel(record.Emotion),
		Frequency:      record.Frequency,
		AvgIntensity:   record.AvgIntensity,
		Triggers:       triggers,
		TimeOfDay:      timeOfDay,
		Trend:          record.Trend,
		LastOccurrence: record.LastOccurrence,
	}
}
