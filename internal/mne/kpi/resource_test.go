package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func tptr(t time.Time) *time.Time {
	return &t
}

func TestFleetKPIs(t *testing.T) {
	dispatch := baseTime
	details := []entity.FleetDetail{
		{TripCompleted: true, DispatchTime: tptr(dispatch), ReturnTime: tptr(dispatch.Add(3 * time.Hour)), FuelUsed: fptr(10), KMTraveled: fptr(120)},
		{TripCompleted: true, DispatchTime: tptr(dispatch), ReturnTime: tptr(dispatch.Add(5 * time.Hour)), FuelUsed: fptr(20), KMTraveled: fptr(180)},
		{TripCompleted: false, BreakdownOccurred: true},
		{TripCompleted: true, FuelUsed: fptr(0), KMTraveled: fptr(50)}, // 零油耗不计入效率
	}

	assert.Equal(t, 75.0, TripCompletionRate(details))
	assert.Equal(t, 4.0, AvgTurnaroundHours(details))
	assert.Equal(t, 10.0, FuelEfficiency(details)) // 300km / 30L
	assert.Equal(t, 1, BreakdownCount(details))

	assert.Equal(t, 0.0, TripCompletionRate(nil))
	assert.Equal(t, 0.0, FuelEfficiency(nil))
}

func TestHRKPIs(t *testing.T) {
	details := []entity.HRDeployment{
		{DeploymentFilled: true, DeploymentDurationDays: iptr(5), OvertimeHours: fptr(8)},
		{DeploymentFilled: true, DeploymentDurationDays: iptr(5)},
		{DeploymentFilled: false},
	}

	assert.InDelta(t, 66.67, DeploymentFillingRate(details), 0.01)
	// 8 / (10天 * 8小时) = 10%
	assert.Equal(t, 10.0, OvertimeUsageRate(details))
	assert.Equal(t, 0.0, OvertimeUsageRate(nil))
}

func TestFinanceKPIs(t *testing.T) {
	received := baseTime
	details := []entity.FinanceTransaction{
		{PaymentAccuracy: true, DateReceived: tptr(received), DateProcessed: tptr(received.AddDate(0, 0, 2)), DocumentCompletenessScore: iptr(90)},
		{PaymentAccuracy: true, DateReceived: tptr(received), DateProcessed: tptr(received.AddDate(0, 0, 4)), DocumentCompletenessScore: iptr(70)},
		{PaymentAccuracy: false},
	}

	assert.Equal(t, 3.0, PaymentTurnaroundDays(details))
	assert.InDelta(t, 66.67, PaymentAccuracyRate(details), 0.01)
	assert.Equal(t, 80.0, DocumentCompletenessScore(details))
}

func TestICTKPIs(t *testing.T) {
	tickets := []entity.ICTTicket{
		{RequestID: "r1", Reopened: false, SystemDowntimeMinutes: iptr(30)},
		{RequestID: "r2", Reopened: true, SystemDowntimeMinutes: iptr(90)},
		{RequestID: "r3", Reopened: false},
		{RequestID: "r4", Reopened: false},
	}
	statuses := map[string]entity.RequestStatus{
		"r1": entity.StatusCompleted,
		"r2": entity.StatusCompleted,
		"r3": entity.StatusInProgress,
		"r4": entity.StatusCompleted,
	}

	assert.Equal(t, 75.0, TicketResolutionRate(tickets, statuses))
	assert.Equal(t, 25.0, ReopenedRate(tickets))
	assert.Equal(t, 60.0, AvgDowntimeMinutes(tickets))
	assert.Equal(t, 0.0, TicketResolutionRate(nil, nil))
}

func TestLogisticsKPIs(t *testing.T) {
	details := []entity.LogisticsDetail{
		{QuantityRequested: fptr(100), QuantityDelivered: fptr(80), RequisitionAccurate: true},
		{QuantityRequested: fptr(100), QuantityDelivered: fptr(100), RequisitionAccurate: true},
		{RequisitionAccurate: false}, // 无数量数据
	}

	assert.Equal(t, 90.0, StockFulfillmentRate(details))
	assert.InDelta(t, 66.67, RequisitionAccuracy(details), 0.01)

	requests := []*entity.Request{
		completedRequest(baseTime, 24, 20),
		completedRequest(baseTime, 24, 30),
		activeRequest(baseTime, 24, entity.StatusInProgress), // 未完成不计入
	}
	assert.Equal(t, 50.0, OnTimeDeliveryRate(requests))
	assert.Equal(t, 0.0, OnTimeDeliveryRate(nil))
}
