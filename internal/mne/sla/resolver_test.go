package sla

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

// memStore is an in-memory PolicyStore for resolver tests.
type memStore struct {
	policies []*entity.SLAPolicy
}

func (m *memStore) FindMatch(_ context.Context, match PolicyMatch) (*entity.SLAPolicy, error) {
	var candidates []*entity.SLAPolicy
	for _, p := range m.policies {
		if !p.IsActive {
			continue
		}
		if p.ResourceType != match.ResourceType || p.Priority != match.Priority {
			continue
		}
		if !ptrEq(p.DivisionID, match.DivisionID) || !ptrEq(p.DepartmentID, match.DepartmentID) || !ptrEq(p.ActivityType, match.ActivityType) {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], nil
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }

func policy(id string, div, dept *string, rt entity.ResourceType, act *string, pri entity.Priority, resp, comp float64) *entity.SLAPolicy {
	return &entity.SLAPolicy{
		ID:                  id,
		DivisionID:          div,
		DepartmentID:        dept,
		ResourceType:        rt,
		ActivityType:        act,
		Priority:            pri,
		ResponseTimeHours:   resp,
		CompletionTimeHours: comp,
		IsActive:            true,
		CreatedAt:           time.Now(),
	}
}

func TestResolverSpecificityCascade(t *testing.T) {
	div := strPtr("div-east")
	dept := strPtr("dept-pharmacy")
	act := strPtr("Medical Consumables - Critical")

	store := &memStore{policies: []*entity.SLAPolicy{
		policy("global", nil, nil, entity.ResourceLogistics, nil, entity.PriorityHigh, 2, 24),
		policy("activity", nil, nil, entity.ResourceLogistics, act, entity.PriorityHigh, 1, 12),
		policy("division", div, nil, entity.ResourceLogistics, act, entity.PriorityHigh, 0.75, 6),
		policy("full", div, dept, entity.ResourceLogistics, act, entity.PriorityHigh, 0.5, 1),
	}}
	r := NewResolver(store)
	ctx := context.Background()

	req := &entity.Request{
		ResourceType:          entity.ResourceLogistics,
		ActivityType:          act,
		Priority:              entity.PriorityHigh,
		RequesterDivisionID:   div,
		RequesterDepartmentID: dept,
	}

	// Full scope wins over every coarser policy.
	p, err := r.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "full", p.ID)

	// Without a department the division-level policy applies.
	req.RequesterDepartmentID = nil
	p, err = r.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "division", p.ID)

	// Without any org scope the activity-level policy applies.
	req.RequesterDivisionID = nil
	p, err = r.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "activity", p.ID)

	// Without an activity type only the global policy can match.
	req.ActivityType = nil
	p, err = r.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "global", p.ID)
}

func TestResolverInactivePolicyNeverMatches(t *testing.T) {
	inactive := policy("inactive", nil, nil, entity.ResourceICT, nil, entity.PriorityHigh, 0.25, 2)
	inactive.IsActive = false
	store := &memStore{policies: []*entity.SLAPolicy{inactive}}
	r := NewResolver(store)

	req := &entity.Request{
		ResourceType: entity.ResourceICT,
		Priority:     entity.PriorityHigh,
	}
	p, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, p)

	// Falls back to built-in defaults.
	b, matched, err := r.ResolveBudget(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, matched)
	assert.Equal(t, Defaults(entity.ResourceICT, entity.PriorityHigh), b)
}

func TestResolverDeterministicOnDuplicates(t *testing.T) {
	older := policy("b-older", nil, nil, entity.ResourceHR, nil, entity.PriorityLow, 48, 120)
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := policy("a-newer", nil, nil, entity.ResourceHR, nil, entity.PriorityLow, 24, 96)
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	store := &memStore{policies: []*entity.SLAPolicy{newer, older}}
	r := NewResolver(store)

	req := &entity.Request{
		ResourceType: entity.ResourceHR,
		Priority:     entity.PriorityLow,
	}
	for i := 0; i < 5; i++ {
		p, err := r.Resolve(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "b-older", p.ID)
	}
}

func TestResolveBudgetPrefersPolicyOverDefaults(t *testing.T) {
	store := &memStore{policies: []*entity.SLAPolicy{
		policy("fin", nil, nil, entity.ResourceFinance, nil, entity.PriorityHigh, 1, 8),
	}}
	r := NewResolver(store)

	req := &entity.Request{
		ResourceType: entity.ResourceFinance,
		Priority:     entity.PriorityHigh,
	}
	b, matched, err := r.ResolveBudget(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, Budget{ResponseHours: 1, CompletionHours: 8}, b)
}

func TestDefaultsMatrix(t *testing.T) {
	// Resource-specific entries.
	assert.Equal(t, Budget{ResponseHours: 2, CompletionHours: 24}, Defaults(entity.ResourceFinance, entity.PriorityHigh))
	assert.Equal(t, Budget{ResponseHours: 0.5, CompletionHours: 1}, Defaults(entity.ResourceLogistics, entity.PriorityHigh))
	assert.Equal(t, Budget{ResponseHours: 24, CompletionHours: 120}, Defaults(entity.ResourceHR, entity.PriorityMedium))
	assert.Equal(t, Budget{ResponseHours: 48, CompletionHours: 168}, Defaults(entity.ResourceICT, entity.PriorityLow))

	// Types not in the matrix fall back to priority defaults.
	assert.Equal(t, Budget{ResponseHours: 2, CompletionHours: 24}, Defaults(entity.ResourceFacilities, entity.PriorityHigh))
	assert.Equal(t, Budget{ResponseHours: 8, CompletionHours: 72}, Defaults(entity.ResourceGeneral, entity.PriorityMedium))
	assert.Equal(t, Budget{ResponseHours: 24, CompletionHours: 168}, Defaults(entity.ResourceFacilities, entity.PriorityLow))
}

func TestFinanceHighEndToEnd(t *testing.T) {
	// No policies configured: FINANCE/HIGH uses the 2h/24h defaults.
	r := NewResolver(&memStore{})
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &entity.Request{
		ResourceType: entity.ResourceFinance,
		Priority:     entity.PriorityHigh,
		Status:       entity.StatusPending,
		CreatedAt:    created,
	}

	b, _, err := r.ResolveBudget(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, Stamp(req, b))

	require.NotNil(t, req.SLAResponseTimeHours)
	require.NotNil(t, req.SLACompletionTimeHours)
	assert.Equal(t, 2, *req.SLAResponseTimeHours)
	assert.Equal(t, 24, *req.SLACompletionTimeHours)
	assert.Equal(t, time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC), *req.SLAResponseDeadline)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), *req.SLACompletionDeadline)

	// 20 hours in: 83% elapsed.
	assert.Equal(t, StatusAtRisk80, Classify(req, time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)))
}
