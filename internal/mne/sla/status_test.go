package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

func stampedRequest(t *testing.T, created time.Time, respHours, compHours float64) *entity.Request {
	t.Helper()
	req := newRequest(created)
	require.NoError(t, Stamp(req, Budget{ResponseHours: respHours, CompletionHours: compHours}))
	return req
}

func TestClassifyProgression(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	req := stampedRequest(t, created, 2, 10)

	assert.Equal(t, StatusOnTrack, Classify(req, created.Add(1*time.Hour)))
	assert.Equal(t, StatusAtRisk50, Classify(req, created.Add(5*time.Hour)))
	assert.Equal(t, StatusAtRisk50, Classify(req, created.Add(7*time.Hour)))
	assert.Equal(t, StatusAtRisk80, Classify(req, created.Add(8*time.Hour)))
	assert.Equal(t, StatusOverdue, Classify(req, created.Add(11*time.Hour)))
}

func TestClassifyCompleted(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	onTime := stampedRequest(t, created, 2, 10)
	onTime.Status = entity.StatusCompleted
	done := created.Add(10 * time.Hour) // exactly at deadline counts as on time
	onTime.ActualCompletionTime = &done
	assert.Equal(t, StatusCompletedOnTime, Classify(onTime, created.Add(48*time.Hour)))

	late := stampedRequest(t, created, 2, 10)
	late.Status = entity.StatusCompleted
	lateDone := created.Add(10*time.Hour + time.Second)
	late.ActualCompletionTime = &lateDone
	assert.Equal(t, StatusCompletedLate, Classify(late, created.Add(48*time.Hour)))
}

func TestClassifyNoSLA(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	rejected := stampedRequest(t, created, 2, 10)
	rejected.Status = entity.StatusRejected
	assert.Equal(t, StatusNoSLA, Classify(rejected, created.Add(100*time.Hour)))

	cancelled := stampedRequest(t, created, 2, 10)
	cancelled.Status = entity.StatusCancelled
	assert.Equal(t, StatusNoSLA, Classify(cancelled, created.Add(time.Hour)))

	// No deadline stamped at all.
	bare := newRequest(created)
	assert.Equal(t, StatusNoSLA, Classify(bare, created.Add(time.Hour)))

	// Completed without an actual completion time is still evaluated in flight.
	stuck := stampedRequest(t, created, 2, 10)
	stuck.Status = entity.StatusCompleted
	assert.Equal(t, StatusOverdue, Classify(stuck, created.Add(11*time.Hour)))
}

func TestClassifyResponse(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	req := stampedRequest(t, created, 4, 24)

	assert.Equal(t, ResponseOnTrack, ClassifyResponse(req, created.Add(1*time.Hour)))
	assert.Equal(t, ResponseDueSoon, ClassifyResponse(req, created.Add(3*time.Hour+30*time.Minute)))
	assert.Equal(t, ResponseOverdue, ClassifyResponse(req, created.Add(5*time.Hour)))

	acked := created.Add(2 * time.Hour)
	req.ActualResponseTime = &acked
	assert.Equal(t, ResponseUnknown, ClassifyResponse(req, created.Add(5*time.Hour)))
}

func TestComplianceOf(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	req := stampedRequest(t, created, 2, 10)

	// Nothing recorded yet: both verdicts undetermined.
	rep := ComplianceOf(req)
	assert.Nil(t, rep.ResponseMet)
	assert.Nil(t, rep.CompletionMet)

	responded := created.Add(3 * time.Hour) // 1h past the 2h response deadline
	completed := created.Add(9 * time.Hour)
	req.ActualResponseTime = &responded
	req.ActualCompletionTime = &completed

	rep = ComplianceOf(req)
	require.NotNil(t, rep.ResponseMet)
	require.NotNil(t, rep.CompletionMet)
	assert.False(t, *rep.ResponseMet)
	assert.True(t, *rep.CompletionMet)
	assert.InDelta(t, 1.0, rep.ResponseDelayHrs, 0.01)
	assert.Zero(t, rep.CompletionDelay)
}

func TestDelayReasonTemplates(t *testing.T) {
	for _, rt := range entity.ResourceTypes() {
		tpl := DelayReasonTemplate(rt)
		assert.NotEmpty(t, tpl)
		assert.Contains(t, tpl, "%s")
	}
	assert.Contains(t, FormatDelayReason(entity.ResourceFleet, "gearbox failure"), "gearbox failure")
}
