package repository

import (
	"context"
	"errors"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/sla"
	"gorm.io/gorm"
)

// PolicyRepository SLA策略仓库
type PolicyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository 创建SLA策略仓库
func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// nullableEq 指针为 nil 时匹配 NULL 列
func nullableEq(query *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *v)
}

// FindMatch 查找与条件精确匹配的启用策略，未命中返回 (nil, nil)。
// 同条件存在多条时按创建时间取最早一条，保证解析结果稳定。
func (r *PolicyRepository) FindMatch(ctx context.Context, m sla.PolicyMatch) (*entity.SLAPolicy, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.SLAPolicy{}).
		Where("is_active = ?", true).
		Where("resource_type = ?", string(m.ResourceType)).
		Where("priority = ?", string(m.Priority))
	query = nullableEq(query, "division_id", m.DivisionID)
	query = nullableEq(query, "department_id", m.DepartmentID)
	query = nullableEq(query, "activity_type", m.ActivityType)

	var policy entity.SLAPolicy
	err := query.Order("created_at ASC, id ASC").First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// FindDuplicate 查找同一作用域组合下的已有策略（写入前查重）
func (r *PolicyRepository) FindDuplicate(ctx context.Context, p *entity.SLAPolicy) (*entity.SLAPolicy, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.SLAPolicy{}).
		Where("resource_type = ?", p.ResourceType).
		Where("priority = ?", p.Priority)
	query = nullableEq(query, "division_id", p.DivisionID)
	query = nullableEq(query, "department_id", p.DepartmentID)
	query = nullableEq(query, "activity_type", p.ActivityType)
	if p.ID != "" {
		query = query.Where("id <> ?", p.ID)
	}

	var existing entity.SLAPolicy
	err := query.First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

// FindByID 根据ID查找策略
func (r *PolicyRepository) FindByID(ctx context.Context, id string) (*entity.SLAPolicy, error) {
	var policy entity.SLAPolicy
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

// Create 创建策略
func (r *PolicyRepository) Create(ctx context.Context, policy *entity.SLAPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

// Update 更新策略
func (r *PolicyRepository) Update(ctx context.Context, policy *entity.SLAPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

// Delete 删除策略
func (r *PolicyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.SLAPolicy{}).Error
}

// List 查询策略列表
func (r *PolicyRepository) List(ctx context.Context, resourceType string, activeOnly bool) ([]entity.SLAPolicy, error) {
	query := r.db.WithContext(ctx).Model(&entity.SLAPolicy{})
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var policies []entity.SLAPolicy
	err := query.Order("resource_type ASC, priority ASC, created_at ASC").Find(&policies).Error
	return policies, err
}
