package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
)

// ResourceDetailRepository 各资源类型明细仓库
type ResourceDetailRepository struct {
	db *gorm.DB
}

// NewResourceDetailRepository 创建资源明细仓库
func NewResourceDetailRepository(db *gorm.DB) *ResourceDetailRepository {
	return &ResourceDetailRepository{db: db}
}

func (r *ResourceDetailRepository) rangeQuery(ctx context.Context, model interface{}, start, end *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(model)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	return query
}

func (r *ResourceDetailRepository) findByRequest(ctx context.Context, requestID string, dest interface{}) error {
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// SaveFleet 写入车队明细
func (r *ResourceDetailRepository) SaveFleet(ctx context.Context, d *entity.FleetDetail) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindFleetByRequest 按请求查车队明细
func (r *ResourceDetailRepository) FindFleetByRequest(ctx context.Context, requestID string) (*entity.FleetDetail, error) {
	var d entity.FleetDetail
	if err := r.findByRequest(ctx, requestID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListFleet 查询区间内的车队明细
func (r *ResourceDetailRepository) ListFleet(ctx context.Context, start, end *time.Time) ([]entity.FleetDetail, error) {
	var details []entity.FleetDetail
	err := r.rangeQuery(ctx, &entity.FleetDetail{}, start, end).Find(&details).Error
	return details, err
}

// SaveHR 写入人力派遣明细
func (r *ResourceDetailRepository) SaveHR(ctx context.Context, d *entity.HRDeployment) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindHRByRequest 按请求查人力派遣明细
func (r *ResourceDetailRepository) FindHRByRequest(ctx context.Context, requestID string) (*entity.HRDeployment, error) {
	var d entity.HRDeployment
	if err := r.findByRequest(ctx, requestID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListHR 查询区间内的人力派遣明细
func (r *ResourceDetailRepository) ListHR(ctx context.Context, start, end *time.Time) ([]entity.HRDeployment, error) {
	var details []entity.HRDeployment
	err := r.rangeQuery(ctx, &entity.HRDeployment{}, start, end).Find(&details).Error
	return details, err
}

// SaveFinance 写入财务处理明细
func (r *ResourceDetailRepository) SaveFinance(ctx context.Context, d *entity.FinanceTransaction) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindFinanceByRequest 按请求查财务处理明细
func (r *ResourceDetailRepository) FindFinanceByRequest(ctx context.Context, requestID string) (*entity.FinanceTransaction, error) {
	var d entity.FinanceTransaction
	if err := r.findByRequest(ctx, requestID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListFinance 查询区间内的财务处理明细
func (r *ResourceDetailRepository) ListFinance(ctx context.Context, start, end *time.Time) ([]entity.FinanceTransaction, error) {
	var details []entity.FinanceTransaction
	err := r.rangeQuery(ctx, &entity.FinanceTransaction{}, start, end).Find(&details).Error
	return details, err
}

// SaveICT 写入ICT工单明细
func (r *ResourceDetailRepository) SaveICT(ctx context.Context, d *entity.ICTTicket) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindICTByRequest 按请求查ICT工单明细
func (r *ResourceDetailRepository) FindICTByRequest(ctx context.Context, requestID string) (*entity.ICTTicket, error) {
	var d entity.ICTTicket
	if err := r.findByRequest(ctx, requestID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListICT 查询区间内的ICT工单明细
func (r *ResourceDetailRepository) ListICT(ctx context.Context, start, end *time.Time) ([]entity.ICTTicket, error) {
	var details []entity.ICTTicket
	err := r.rangeQuery(ctx, &entity.ICTTicket{}, start, end).Find(&details).Error
	return details, err
}

// SaveLogistics 写入物流明细
func (r *ResourceDetailRepository) SaveLogistics(ctx context.Context, d *entity.LogisticsDetail) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindLogisticsByRequest 按请求查物流明细
func (r *ResourceDetailRepository) FindLogisticsByRequest(ctx context.Context, requestID string) (*entity.LogisticsDetail, error) {
	var d entity.LogisticsDetail
	if err := r.findByRequest(ctx, requestID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListLogistics 查询区间内的物流明细
func (r *ResourceDetailRepository) ListLogistics(ctx context.Context, start, end *time.Time) ([]entity.LogisticsDetail, error) {
	var details []entity.LogisticsDetail
	err := r.rangeQuery(ctx, &entity.LogisticsDetail{}, start, end).Find(&details).Error
	return details, err
}
