package repository

import (
	"context"
	"errors"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SatisfactionRepository 满意度评价仓库
type SatisfactionRepository struct {
	db *gorm.DB
}

// NewSatisfactionRepository 创建满意度评价仓库
func NewSatisfactionRepository(db *gorm.DB) *SatisfactionRepository {
	return &SatisfactionRepository{db: db}
}

// Upsert 写入或覆盖请求的满意度评价（一个请求只保留一条）
func (r *SatisfactionRepository) Upsert(ctx context.Context, s *entity.CustomerSatisfaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "request_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timeliness_score", "quality_score", "communication_score",
				"professionalism_score", "overall_score", "comments",
				"submitted_by", "submitted_at",
			}),
		}).
		Create(s).Error
}

// FindByRequest 查找请求的满意度评价
func (r *SatisfactionRepository) FindByRequest(ctx context.Context, requestID string) (*entity.CustomerSatisfaction, error) {
	var s entity.CustomerSatisfaction
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
