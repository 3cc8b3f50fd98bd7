package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/pkg/dbctx"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type FeedbackRepo interface {
	Create(dbc dbctx.Context, rows []*types.Feedback) ([]*types.Feedback, error)
	ListRecent(dbc dbctx.Context, category string, limit int) ([]*types.Feedback, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return &feedbackRepo{
		db:  db,
		log: baseLog.With("repo", "FeedbackRepo"),
	}
}

func (r *feedbackRepo) Create(dbc dbctx.Context, rows []*types.Feedback) ([]*types.Feedback, error) {
	transaction := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.Feedback{}, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
	}
	if err := transaction.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecent returns newest-first feedback, optionally filtered by category.
func (r *feedbackRepo) ListRecent(dbc dbctx.Context, category string, limit int) ([]*types.Feedback, error) {
	transaction := dbc.DB(r.db)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := transaction.Order("created_at DESC").Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []*types.Feedback
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
