package sla

import (
	"context"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

// PolicyMatch 策略匹配条件，指针为 nil 表示对应列必须为 NULL
type PolicyMatch struct {
	DivisionID   *string
	DepartmentID *string
	ResourceType entity.ResourceType
	ActivityType *string
	Priority     entity.Priority
}

// PolicyStore 策略查询接口，未命中返回 (nil, nil)
type PolicyStore interface {
	FindMatch(ctx context.Context, m PolicyMatch) (*entity.SLAPolicy, error)
}

// Resolver 按特异性级联解析请求适用的SLA策略
type Resolver struct {
	store PolicyStore
}

func NewResolver(store PolicyStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve 依次尝试四级匹配：全维度、去科室、去战区、再去活动类型；都未命中返回 (nil, nil)
func (r *Resolver) Resolve(ctx context.Context, req *entity.Request) (*entity.SLAPolicy, error) {
	attempts := []PolicyMatch{
		{
			DivisionID:   req.RequesterDivisionID,
			DepartmentID: req.RequesterDepartmentID,
			ResourceType: req.ResourceType,
			ActivityType: req.ActivityType,
			Priority:     req.Priority,
		},
		{
			DivisionID:   req.RequesterDivisionID,
			ResourceType: req.ResourceType,
			ActivityType: req.ActivityType,
			Priority:     req.Priority,
		},
		{
			ResourceType: req.ResourceType,
			ActivityType: req.ActivityType,
			Priority:     req.Priority,
		},
		{
			ResourceType: req.ResourceType,
			Priority:     req.Priority,
		},
	}
	for _, m := range attempts {
		p, err := r.store.FindMatch(ctx, m)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, nil
}

// ResolveBudget 解析策略并换算为时限预算，无策略时使用默认矩阵
func (r *Resolver) ResolveBudget(ctx context.Context, req *entity.Request) (Budget, *entity.SLAPolicy, error) {
	p, err := r.Resolve(ctx, req)
	if err != nil {
		return Budget{}, nil, err
	}
	if p == nil {
		return Defaults(req.ResourceType, req.Priority), nil, nil
	}
	return Budget{
		ResponseHours:   p.ResponseTimeHours,
		CompletionHours: p.CompletionTimeHours,
	}, p, nil
}
