package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/navin5447/Edgesoul/internal/memory"
	"github.com/navin5447/Edgesoul/internal/types"
)

// memoryModel maps to the memories table.
type memoryModel struct {
	ID         string `gorm:"primaryKey"`
	UserID     string
	Kind       string
	Content    string
	Context    string
	Confidence float64
	// Importance is a 0-1 score, used in ranking.
	Importance  float64
	AccessCount int
	// Embedding stores the vector representation for similarity search.
	Embedding    *pgvector.Vector `gorm:"type:vector"`
	CreatedAt    time.Time
	LastAccessed time.Time
}

func (memoryModel) TableName() string {
	return "memories"
}

// MemoryRepo accesses long-term memory data.
type MemoryRepo struct {
	db *gorm.DB
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(db *gorm.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

func (r *MemoryRepo) Add(ctx context.Context, mem types.Memory) error {
	var vector *pgvector.Vector
	if len(mem.Embedding) > 0 {
		v := pgvector.NewVector(mem.Embedding)
		vector = &v
	}
	record := memoryModel{
		ID:           mem.ID,
		UserID:       mem.UserID,
		Kind:         string(mem.Kind),
		Content:      mem.Content,
		Context:      mem.Context,
		Confidence:   mem.Confidence,
		Importance:   mem.Importance,
		AccessCount:  mem.AccessCount,
		Embedding:    vector,
		CreatedAt:    mem.CreatedAt,
		LastAccessed: mem.LastAccessed,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

func (r *MemoryRepo) Search(ctx context.Context, userID, query string, kinds []types.MemoryKind, minConfidence float64, limit int) ([]types.Memory, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("confidence >= ?", minConfidence).
		Order("importance DESC, created_at DESC")
	if query != "" {
		q = q.Where("content ILIKE ?", "%"+query+"%")
	}
	if len(kinds) > 0 {
		kindStrings := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			kindStrings = append(kindStrings, string(kind))
		}
		q = q.Where("kind IN ?", kindStrings)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []memoryModel
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}

	results := make([]types.Memory, 0, len(records))
	for _, record := range records {
		results = append(results, memoryFromModel(record))
	}
	return results, nil
}

func (r *MemoryRepo) Recent(ctx context.Context, userID string, since time.Time, limit int) ([]types.Memory, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at > ?", userID, since).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []memoryModel
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent memories: %w", err)
	}

	results := make([]types.Memory, 0, len(records))
	for _, record := range records {
		results = append(results, memoryFromModel(record))
	}
	return results, nil
}

// Touch bumps access counters and timestamps for retrieved memories.
func (r *MemoryRepo) Touch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&memoryModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"access_count":  gorm.Expr("access_count + 1"),
			"last_accessed": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to touch memories: %w", err)
	}
	return nil
}

func (r *MemoryRepo) SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]memory.SimilarMemory, error) {
	if len(embedding) == 0 {
		return nil, nil
	}

	// Filter by cosine similarity, then re-rank with importance blended in.
	query := `
		SELECT content, kind, created_at,
		       1 - (embedding <=> $1) AS similarity,
		       COALESCE(importance, 0) AS importance
		FROM memories
		WHERE embedding IS NOT NULL
		  AND user_id = $2
		  AND 1 - (embedding <=> $1) > $3
		ORDER BY (0.85 * (1 - (embedding <=> $1)) + 0.15 * COALESCE(importance, 0)) DESC
		LIMIT $4`

	var rows []struct {
		Content    string
		Kind       string
		CreatedAt  time.Time
		Similarity float64
		Importance float64
	}
	err := r.db.WithContext(ctx).
		Raw(query, pgvector.NewVector(embedding), userID, threshold, topK).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search similar memories: %w", err)
	}

	results := make([]memory.SimilarMemory, 0, len(rows))
	for _, row := range rows {
		results = append(results, memory.SimilarMemory{
			Content:    row.Content,
			Kind:       types.MemoryKind(row.Kind),
			Similarity: row.Similarity,
			Importance: row.Importance,
			CreatedAt:  row.CreatedAt,
		})
	}
	return results, nil
}

func memoryFromModel(record memoryModel) types.Memory {
	return types.Memory{
		ID:           record.ID,
		UserID:       record.UserID,
		Kind:         types.MemoryKind(record.Kind),
		Content:      record.Content,
		Context:      record.Context,
		Confidence:   record.Confidence,
		Importance:   record.Importance,
		AccessCount:  record.AccessCount,
		CreatedAt:    record.CreatedAt,
		LastAccessed: record.LastAccessed,
	}
}
