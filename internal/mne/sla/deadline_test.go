package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

func newRequest(created time.Time) *entity.Request {
	return &entity.Request{
		ResourceType: entity.ResourceLogistics,
		Priority:     entity.PriorityHigh,
		Status:       entity.StatusPending,
		CreatedAt:    created,
	}
}

func TestStampFractionalHours(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	req := newRequest(created)

	// 0.5h response floors to 0 then clamps to the 1 hour minimum,
	// but the deadline keeps the exact 30 minutes.
	require.NoError(t, Stamp(req, Budget{ResponseHours: 0.5, CompletionHours: 1}))
	assert.Equal(t, 1, *req.SLAResponseTimeHours)
	assert.Equal(t, 1, *req.SLACompletionTimeHours)
	assert.Equal(t, created.Add(30*time.Minute), *req.SLAResponseDeadline)
	assert.Equal(t, created.Add(time.Hour), *req.SLACompletionDeadline)
}

func TestStampFloorsWholeHours(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	req := newRequest(created)

	require.NoError(t, Stamp(req, Budget{ResponseHours: 2.75, CompletionHours: 24.5}))
	assert.Equal(t, 2, *req.SLAResponseTimeHours)
	assert.Equal(t, 24, *req.SLACompletionTimeHours)
	assert.Equal(t, created.Add(2*time.Hour+45*time.Minute), *req.SLAResponseDeadline)
	assert.Equal(t, created.Add(24*time.Hour+30*time.Minute), *req.SLACompletionDeadline)
}

func TestStampRejectsSecondStamp(t *testing.T) {
	req := newRequest(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, Stamp(req, Budget{ResponseHours: 2, CompletionHours: 24}))

	firstDeadline := *req.SLACompletionDeadline
	err := Stamp(req, Budget{ResponseHours: 1, CompletionHours: 4})
	assert.ErrorIs(t, err, ErrAlreadyStamped)
	// Snapshot unchanged.
	assert.Equal(t, firstDeadline, *req.SLACompletionDeadline)
	assert.Equal(t, 2, *req.SLAResponseTimeHours)
}

func TestStampValidation(t *testing.T) {
	req := newRequest(time.Time{})
	assert.ErrorIs(t, Stamp(req, Budget{ResponseHours: 2, CompletionHours: 24}), ErrIncompleteRequest)

	req = newRequest(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, Stamp(req, Budget{ResponseHours: 24, CompletionHours: 2}), ErrInvalidBudget)
	// Failed stamp leaves the request untouched.
	assert.False(t, req.Stamped())
}

func TestSnapshotStableUnderMutation(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	req := newRequest(created)
	require.NoError(t, Stamp(req, Budget{ResponseHours: 2, CompletionHours: 24}))

	deadline := *req.SLACompletionDeadline

	// Priority and assignment changes never recompute the snapshot.
	req.Priority = entity.PriorityLow
	req.Status = entity.StatusInProgress
	assert.Equal(t, deadline, *req.SLACompletionDeadline)
	assert.Equal(t, 2, *req.SLAResponseTimeHours)
}
