package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
)

// RequestRepository 服务请求仓库
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建服务请求仓库
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// RequestFilter 请求列表过滤条件
type RequestFilter struct {
	Status       string
	ResourceType string
	Priority     string
	DivisionID   string
	DepartmentID string
	RequesterID  string
	AssignedTo   string
	Keyword      string
	Page         int
	PageSize     int
}

// ReportFilter 报表统计过滤条件（按发起方口径）
type ReportFilter struct {
	DivisionID   *string
	DepartmentID *string
	ResourceType string
	Start        *time.Time
	End          *time.Time
}

// FindByID 根据ID查找请求
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.Request, error) {
	var req entity.Request
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("RequesterDivision").
		Preload("AssignedDivision").
		Preload("Alerts").
		Preload("Satisfaction").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindByCode 根据编号查找请求
func (r *RequestRepository) FindByCode(ctx context.Context, code string) (*entity.Request, error) {
	var req entity.Request
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Create 创建请求
func (r *RequestRepository) Create(ctx context.Context, req *entity.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// Update 更新请求
func (r *RequestRepository) Update(ctx context.Context, req *entity.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// CountByCodePrefix 统计编号前缀已有数量（生成当日序号用）
func (r *RequestRepository) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Request{}).
		Where("code LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

// List 分页查询请求列表
func (r *RequestRepository) List(ctx context.Context, filter RequestFilter) ([]entity.Request, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Request{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DivisionID != "" {
		query = query.Where("requester_division_id = ?", filter.DivisionID)
	}
	if filter.DepartmentID != "" {
		query = query.Where("requester_department_id = ?", filter.DepartmentID)
	}
	if filter.RequesterID != "" {
		query = query.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_user_id = ?", filter.AssignedTo)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("code ILIKE ? OR description ILIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var requests []entity.Request
	err := query.
		Preload("Requester").
		Preload("RequesterDivision").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, total, err
}

// ListForReport 查询报表统计样本（不分页）
func (r *RequestRepository) ListForReport(ctx context.Context, filter ReportFilter) ([]*entity.Request, error) {
	query := r.db.WithContext(ctx).Model(&entity.Request{})

	if filter.DivisionID != nil {
		query = query.Where("requester_division_id = ?", *filter.DivisionID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("requester_department_id = ?", *filter.DepartmentID)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("created_at <= ?", *filter.End)
	}

	var requests []*entity.Request
	err := query.Order("created_at ASC").Find(&requests).Error
	return requests, err
}

// ListActive 查询仍在处理中的请求（巡检扫描用）
func (r *RequestRepository) ListActive(ctx context.Context) ([]*entity.Request, error) {
	var requests []*entity.Request
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(entity.StatusPending),
			string(entity.StatusApprovalPending),
			string(entity.StatusApproved),
			string(entity.StatusInProgress),
		}).
		Where("sla_completion_deadline IS NOT NULL").
		Find(&requests).Error
	return requests, err
}
