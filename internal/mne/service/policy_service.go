package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/sla"
)

// PolicyService SLA策略服务
type PolicyService struct {
	policyRepo *repository.PolicyRepository
}

// NewPolicyService 创建SLA策略服务
func NewPolicyService(policyRepo *repository.PolicyRepository) *PolicyService {
	return &PolicyService{policyRepo: policyRepo}
}

// PolicyInput 策略入参
type PolicyInput struct {
	Name                string              `json:"name"`
	DivisionID          *string             `json:"division_id"`
	DepartmentID        *string             `json:"department_id"`
	ResourceType        entity.ResourceType `json:"resource_type" binding:"required"`
	ActivityType        *string             `json:"activity_type"`
	Priority            entity.Priority     `json:"priority" binding:"required"`
	ResponseTimeHours   float64             `json:"response_time_hours" binding:"required"`
	CompletionTimeHours float64             `json:"completion_time_hours" binding:"required"`
	IsActive            *bool               `json:"is_active"`
}

func (s *PolicyService) validate(in PolicyInput) error {
	if !in.ResourceType.Valid() {
		return fmt.Errorf("%w: resource type %q", ErrInvalidInput, in.ResourceType)
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("%w: priority %q", ErrInvalidInput, in.Priority)
	}
	if in.ResponseTimeHours <= 0 || in.CompletionTimeHours <= 0 {
		return fmt.Errorf("%w: time budgets must be positive", ErrInvalidInput)
	}
	if in.CompletionTimeHours < in.ResponseTimeHours {
		return fmt.Errorf("%w: completion time must not be less than response time", ErrInvalidInput)
	}
	// 科室级策略必须带战区
	if in.DepartmentID != nil && in.DivisionID == nil {
		return fmt.Errorf("%w: department-scoped policy requires a division", ErrInvalidInput)
	}
	return nil
}

// Create 创建策略，同作用域已有策略时拒绝
func (s *PolicyService) Create(ctx context.Context, in PolicyInput, createdBy string) (*entity.SLAPolicy, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	policy := &entity.SLAPolicy{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		DivisionID:          in.DivisionID,
		DepartmentID:        in.DepartmentID,
		ResourceType:        in.ResourceType,
		ActivityType:        in.ActivityType,
		Priority:            in.Priority,
		ResponseTimeHours:   in.ResponseTimeHours,
		CompletionTimeHours: in.CompletionTimeHours,
		IsActive:            true,
		CreatedBy:           createdBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.IsActive != nil {
		policy.IsActive = *in.IsActive
	}

	existing, err := s.policyRepo.FindDuplicate(ctx, policy)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: policy %s", ErrDuplicatePolicy, existing.ID)
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// Update 更新策略
func (s *PolicyService) Update(ctx context.Context, id string, in PolicyInput) (*entity.SLAPolicy, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	policy, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.Name = in.Name
	policy.DivisionID = in.DivisionID
	policy.DepartmentID = in.DepartmentID
	policy.ResourceType = in.ResourceType
	policy.ActivityType = in.ActivityType
	policy.Priority = in.Priority
	policy.ResponseTimeHours = in.ResponseTimeHours
	policy.CompletionTimeHours = in.CompletionTimeHours
	if in.IsActive != nil {
		policy.IsActive = *in.IsActive
	}
	policy.UpdatedAt = time.Now()

	existing, err := s.policyRepo.FindDuplicate(ctx, policy)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: policy %s", ErrDuplicatePolicy, existing.ID)
	}

	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// Get 获取策略
func (s *PolicyService) Get(ctx context.Context, id string) (*entity.SLAPolicy, error) {
	return s.policyRepo.FindByID(ctx, id)
}

// Delete 删除策略
func (s *PolicyService) Delete(ctx context.Context, id string) error {
	if _, err := s.policyRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.policyRepo.Delete(ctx, id)
}

// List 查询策略列表
func (s *PolicyService) List(ctx context.Context, resourceType string, activeOnly bool) ([]entity.SLAPolicy, error) {
	return s.policyRepo.List(ctx, resourceType, activeOnly)
}

// SeedDefaults 把内置默认时限矩阵落库为全局策略（幂等，已存在的组合跳过）
func (s *PolicyService) SeedDefaults(ctx context.Context, createdBy string) (int, error) {
	var created int
	for _, rt := range entity.ResourceTypes() {
		for _, p := range []entity.Priority{entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow} {
			b := sla.Defaults(rt, p)
			policy := &entity.SLAPolicy{
				ID:                  uuid.New().String(),
				Name:                fmt.Sprintf("Default %s / %s", rt, p),
				ResourceType:        rt,
				Priority:            p,
				ResponseTimeHours:   b.ResponseHours,
				CompletionTimeHours: b.CompletionHours,
				IsActive:            true,
				CreatedBy:           createdBy,
				CreatedAt:           time.Now(),
				UpdatedAt:           time.Now(),
			}
			existing, err := s.policyRepo.FindDuplicate(ctx, policy)
			if err != nil {
				return created, err
			}
			if existing != nil {
				continue
			}
			if err := s.policyRepo.Create(ctx, policy); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
