package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

func TestTimeRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -30), TimeRange(entity.PeriodDaily, now))
	assert.Equal(t, now.AddDate(0, 0, -84), TimeRange(entity.PeriodWeekly, now))
	assert.Equal(t, now.AddDate(0, 0, -365), TimeRange(entity.PeriodMonthly, now))
	assert.Equal(t, now.AddDate(-3, 0, 0), TimeRange(entity.PeriodYearly, now))
}

func TestLabels(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	daily := Labels(entity.PeriodDaily, start, end)
	assert.Equal(t, []string{"Jun 01", "Jun 02", "Jun 03"}, daily)

	monthly := Labels(entity.PeriodMonthly, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, []string{"Apr 2025", "May 2025", "Jun 2025"}, monthly)

	yearly := Labels(entity.PeriodYearly, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, []string{"2023", "2024", "2025"}, yearly)
}

func TestLabelsWeeklyAcrossYearBoundary(t *testing.T) {
	// ISO周52(2025)、周1、周2(2026)，跨年不并桶
	start := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	weekly := Labels(entity.PeriodWeekly, start, end)
	assert.Equal(t, []string{"2025-W52", "2026-W01", "2026-W02"}, weekly)
}

func TestVolumeTrend(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	requests := []*entity.Request{
		{Status: entity.StatusPending, CreatedAt: start.Add(2 * time.Hour)},
		{Status: entity.StatusCompleted, CreatedAt: start.Add(3 * time.Hour)},
		{Status: entity.StatusRejected, CreatedAt: end.Add(1 * time.Hour)},
	}

	ms := VolumeTrend(entity.PeriodDaily, requests, start, end)
	require.Equal(t, []string{"Jun 01", "Jun 02"}, ms.Labels)
	require.Len(t, ms.Series, 4)

	total := ms.Series[0]
	assert.Equal(t, "total", total.Name)
	assert.Equal(t, 2.0, total.Points[0].Value)
	assert.Equal(t, 1.0, total.Points[1].Value)

	rejected := ms.Series[3]
	assert.Equal(t, "rejected", rejected.Name)
	assert.Equal(t, 0.0, rejected.Points[0].Value)
	assert.Equal(t, 1.0, rejected.Points[1].Value)
}

func TestComplianceTrendPerBucket(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := end.Add(24 * time.Hour)

	requests := []*entity.Request{
		completedRequest(start.Add(time.Hour), 4, 2),  // day 1, within
		completedRequest(start.Add(2*time.Hour), 4, 8), // day 1, late
		completedRequest(end.Add(time.Hour), 4, 2),    // day 2, within
	}

	series := ComplianceTrend(entity.PeriodDaily, requests, start, end, now)
	require.Len(t, series.Points, 2)
	assert.InDelta(t, 50, series.Points[0].Value, 0.01)
	assert.InDelta(t, 100, series.Points[1].Value, 0.01)
}

func TestEfficiencyTrendBaseline(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Resolution at the 72h baseline scores 0, instant resolution scores 100.
	fast := completedRequest(start.Add(time.Hour), 24, 0)
	slow := completedRequest(start.Add(2*time.Hour), 96, 72)

	series := EfficiencyTrend(entity.PeriodDaily, []*entity.Request{fast, slow}, start, start)
	require.Len(t, series.Points, 1)
	// avg resolution = 36h -> 100 - 36/72*100 = 50
	assert.InDelta(t, 50, series.Points[0].Value, 0.01)

	// Empty bucket scores the full 100 (no backlog).
	empty := EfficiencyTrend(entity.PeriodDaily, nil, start, start)
	assert.InDelta(t, 100, empty.Points[0].Value, 0.01)
}
