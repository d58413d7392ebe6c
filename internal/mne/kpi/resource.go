package kpi

import (
	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/sla"
)

// 各资源类型的专项KPI。输入为明细切片（SQL过滤在仓库层完成），
// 分母为零时统一返回0。

// FleetKPI 车队专项指标
type FleetKPI struct {
	TripCompletionRate float64 `json:"trip_completion_rate"`
	AvgTurnaroundHours float64 `json:"avg_turnaround_hours"`
	FuelEfficiencyKMPL float64 `json:"fuel_efficiency_km_per_liter"`
	BreakdownCount     int     `json:"breakdown_count"`
}

// HRKPI 人力派遣专项指标
type HRKPI struct {
	DeploymentFillingRate float64 `json:"deployment_filling_rate"`
	OvertimeUsageRate     float64 `json:"overtime_usage_rate"`
}

// FinanceKPI 财务处理专项指标
type FinanceKPI struct {
	PaymentTurnaroundDays     float64 `json:"payment_turnaround_days"`
	PaymentAccuracyRate       float64 `json:"payment_accuracy_rate"`
	DocumentCompletenessScore float64 `json:"document_completeness_score"`
}

// ICTKPI ICT工单专项指标
type ICTKPI struct {
	TicketResolutionRate float64 `json:"ticket_resolution_rate"`
	ReopenedRate         float64 `json:"reopened_rate"`
	AvgDowntimeMinutes   float64 `json:"avg_downtime_minutes"`
}

// LogisticsKPI 物流补给专项指标
type LogisticsKPI struct {
	OnTimeDeliveryRate   float64 `json:"on_time_delivery_rate"`
	StockFulfillmentRate float64 `json:"stock_fulfillment_rate"`
	RequisitionAccuracy  float64 `json:"requisition_accuracy"`
}

// TripCompletionRate 行程完成率
func TripCompletionRate(details []entity.FleetDetail) float64 {
	if len(details) == 0 {
		return 0
	}
	var completed int
	for _, d := range details {
		if d.TripCompleted {
			completed++
		}
	}
	return round2(float64(completed) / float64(len(details)) * 100)
}

// AvgTurnaroundHours 平均周转时长（出车到收车，小时）
func AvgTurnaroundHours(details []entity.FleetDetail) float64 {
	var total float64
	var n int
	for _, d := range details {
		if d.DispatchTime == nil || d.ReturnTime == nil {
			continue
		}
		total += d.ReturnTime.Sub(*d.DispatchTime).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

// FuelEfficiency 燃油效率（公里/升）
func FuelEfficiency(details []entity.FleetDetail) float64 {
	var totalKM, totalFuel float64
	for _, d := range details {
		if d.FuelUsed == nil || d.KMTraveled == nil || *d.FuelUsed <= 0 {
			continue
		}
		totalKM += *d.KMTraveled
		totalFuel += *d.FuelUsed
	}
	if totalFuel == 0 {
		return 0
	}
	return round2(totalKM / totalFuel)
}

// BreakdownCount 区间内故障次数
func BreakdownCount(details []entity.FleetDetail) int {
	var n int
	for _, d := range details {
		if d.BreakdownOccurred {
			n++
		}
	}
	return n
}

// DeploymentFillingRate 派遣满足率
func DeploymentFillingRate(details []entity.HRDeployment) float64 {
	if len(details) == 0 {
		return 0
	}
	var filled int
	for _, d := range details {
		if d.DeploymentFilled {
			filled++
		}
	}
	return round2(float64(filled) / float64(len(details)) * 100)
}

// OvertimeUsageRate 加班占比（按每日8小时折算派遣总时长）
func OvertimeUsageRate(details []entity.HRDeployment) float64 {
	var totalHours, overtimeHours float64
	for _, d := range details {
		if d.DeploymentDurationDays == nil {
			continue
		}
		totalHours += float64(*d.DeploymentDurationDays) * 8
		if d.OvertimeHours != nil {
			overtimeHours += *d.OvertimeHours
		}
	}
	if totalHours == 0 {
		return 0
	}
	return round2(overtimeHours / totalHours * 100)
}

// PaymentTurnaroundDays 平均付款处理周期（天）
func PaymentTurnaroundDays(details []entity.FinanceTransaction) float64 {
	var totalDays float64
	var n int
	for _, d := range details {
		if d.DateReceived == nil || d.DateProcessed == nil {
			continue
		}
		totalDays += d.DateProcessed.Sub(*d.DateReceived).Hours() / 24
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(totalDays / float64(n))
}

// PaymentAccuracyRate 付款准确率
func PaymentAccuracyRate(details []entity.FinanceTransaction) float64 {
	if len(details) == 0 {
		return 0
	}
	var accurate int
	for _, d := range details {
		if d.PaymentAccuracy {
			accurate++
		}
	}
	return round2(float64(accurate) / float64(len(details)) * 100)
}

// DocumentCompletenessScore 单据完整度平均分
func DocumentCompletenessScore(details []entity.FinanceTransaction) float64 {
	var total float64
	var n int
	for _, d := range details {
		if d.DocumentCompletenessScore == nil {
			continue
		}
		total += float64(*d.DocumentCompletenessScore)
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

// TicketResolutionRate 工单解决率。
// statusByRequest 提供工单对应请求的当前状态（解决 = 请求已完成）。
func TicketResolutionRate(tickets []entity.ICTTicket, statusByRequest map[string]entity.RequestStatus) float64 {
	if len(tickets) == 0 {
		return 0
	}
	var resolved int
	for _, tk := range tickets {
		if statusByRequest[tk.RequestID] == entity.StatusCompleted {
			resolved++
		}
	}
	return round2(float64(resolved) / float64(len(tickets)) * 100)
}

// ReopenedRate 工单重开率
func ReopenedRate(tickets []entity.ICTTicket) float64 {
	if len(tickets) == 0 {
		return 0
	}
	var reopened int
	for _, tk := range tickets {
		if tk.Reopened {
			reopened++
		}
	}
	return round2(float64(reopened) / float64(len(tickets)) * 100)
}

// AvgDowntimeMinutes 平均系统停机时长（分钟）
func AvgDowntimeMinutes(tickets []entity.ICTTicket) float64 {
	var total float64
	var n int
	for _, tk := range tickets {
		if tk.SystemDowntimeMinutes == nil {
			continue
		}
		total += float64(*tk.SystemDowntimeMinutes)
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

// OnTimeDeliveryRate 准时交付率（已完成且可判定的请求中按期完成的比例）
func OnTimeDeliveryRate(requests []*entity.Request) float64 {
	var onTime, total int
	for _, req := range requests {
		if req.Status != entity.StatusCompleted {
			continue
		}
		met, ok := sla.CompletionMet(req)
		if !ok {
			continue
		}
		total++
		if met {
			onTime++
		}
	}
	if total == 0 {
		return 0
	}
	return round2(float64(onTime) / float64(total) * 100)
}

// StockFulfillmentRate 库存满足率（实发量/申请量）
func StockFulfillmentRate(details []entity.LogisticsDetail) float64 {
	var requested, delivered float64
	for _, d := range details {
		if d.QuantityRequested == nil || d.QuantityDelivered == nil || *d.QuantityRequested <= 0 {
			continue
		}
		requested += *d.QuantityRequested
		delivered += *d.QuantityDelivered
	}
	if requested == 0 {
		return 0
	}
	return round2(delivered / requested * 100)
}

// RequisitionAccuracy 请领单准确率
func RequisitionAccuracy(details []entity.LogisticsDetail) float64 {
	if len(details) == 0 {
		return 0
	}
	var accurate int
	for _, d := range details {
		if d.RequisitionAccurate {
			accurate++
		}
	}
	return round2(float64(accurate) / float64(len(details)) * 100)
}
