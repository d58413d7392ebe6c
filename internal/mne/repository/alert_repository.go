package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlertRepository SLA告警仓库
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository 创建SLA告警仓库
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// CreateIfAbsent 创建告警，同一请求同一类型已存在时静默跳过。
// 返回本次是否新建，巡检任务据此决定要不要推送通知。
func (r *AlertRepository) CreateIfAbsent(ctx context.Context, alert *entity.SLAAlert) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}, {Name: "alert_type"}},
			DoNothing: true,
		}).
		Create(alert)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID 根据ID查找告警
func (r *AlertRepository) FindByID(ctx context.Context, id string) (*entity.SLAAlert, error) {
	var alert entity.SLAAlert
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// List 查询告警列表
func (r *AlertRepository) List(ctx context.Context, requestID string, unreadOnly bool) ([]entity.SLAAlert, error) {
	query := r.db.WithContext(ctx).Model(&entity.SLAAlert{})
	if requestID != "" {
		query = query.Where("request_id = ?", requestID)
	}
	if unreadOnly {
		query = query.Where("acknowledged_at IS NULL")
	}

	var alerts []entity.SLAAlert
	err := query.
		Preload("Request").
		Order("sent_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// Acknowledge 标记告警已读
func (r *AlertRepository) Acknowledge(ctx context.Context, id, userID string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.SLAAlert{}).
		Where("id = ? AND acknowledged_at IS NULL", id).
		Updates(map[string]interface{}{
			"acknowledged_at": now,
			"acknowledged_by": userID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
