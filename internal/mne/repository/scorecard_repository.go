package repository

import (
	"context"
	"errors"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
)

// ScorecardRepository 记分卡快照仓库
type ScorecardRepository struct {
	db *gorm.DB
}

// NewScorecardRepository 创建记分卡快照仓库
func NewScorecardRepository(db *gorm.DB) *ScorecardRepository {
	return &ScorecardRepository{db: db}
}

// Create 保存记分卡快照
func (r *ScorecardRepository) Create(ctx context.Context, sc *entity.Scorecard) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

// FindByID 根据ID查找记分卡
func (r *ScorecardRepository) FindByID(ctx context.Context, id string) (*entity.Scorecard, error) {
	var sc entity.Scorecard
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sc, nil
}

// List 查询记分卡历史
func (r *ScorecardRepository) List(ctx context.Context, divisionID string, limit int) ([]entity.Scorecard, error) {
	query := r.db.WithContext(ctx).Model(&entity.Scorecard{})
	if divisionID != "" {
		query = query.Where("division_id = ?", divisionID)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var cards []entity.Scorecard
	err := query.
		Order("period_end DESC, created_at DESC").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}
