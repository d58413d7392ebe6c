package kpi

import (
	"math"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/sla"
)

// Options 合规率统计选项
type Options struct {
	// IncludeActiveOverdue 把已超期但尚未完成的活动请求计入分母
	IncludeActiveOverdue bool
	Now                  time.Time
}

// ComplianceResult 合规率统计结果
type ComplianceResult struct {
	Rate           float64 `json:"rate"`
	WithinSLA      int     `json:"within_sla"`
	CompletedLate  int     `json:"completed_late"`
	OverdueActive  int     `json:"overdue_active"`
	TotalEvaluated int     `json:"total_evaluated"`
}

// Compliance 计算完成时限合规率。
// 分母为已完成且可判定的请求，开启 IncludeActiveOverdue 后再加上已超期的活动请求；
// 分母为零时视为100%。
func Compliance(requests []*entity.Request, opts Options) ComplianceResult {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	var res ComplianceResult
	for _, req := range requests {
		if req.Status == entity.StatusCompleted {
			met, ok := sla.CompletionMet(req)
			if !ok {
				continue
			}
			if met {
				res.WithinSLA++
			} else {
				res.CompletedLate++
			}
			continue
		}
		if opts.IncludeActiveOverdue && activeOverdue(req, now) {
			res.OverdueActive++
		}
	}
	res.TotalEvaluated = res.WithinSLA + res.CompletedLate + res.OverdueActive
	if res.TotalEvaluated == 0 {
		res.Rate = 100
		return res
	}
	res.Rate = round2(float64(res.WithinSLA) / float64(res.TotalEvaluated) * 100)
	return res
}

// activeOverdue 仍在处理中且完成截止时间已过
func activeOverdue(req *entity.Request, now time.Time) bool {
	switch req.Status {
	case entity.StatusPending, entity.StatusInProgress:
	default:
		return false
	}
	return req.SLACompletionDeadline != nil && now.After(*req.SLACompletionDeadline)
}

// FulfillmentRate 完成率：已完成 / (总数 - 被拒绝 - 已取消)，分母为零视为100%
func FulfillmentRate(requests []*entity.Request) float64 {
	var completed, eligible int
	for _, req := range requests {
		switch req.Status {
		case entity.StatusRejected, entity.StatusCancelled:
			continue
		case entity.StatusCompleted:
			completed++
		}
		eligible++
	}
	if eligible == 0 {
		return 100
	}
	return round2(float64(completed) / float64(eligible) * 100)
}

// AvgResolutionHours 已完成请求的平均解决时长（小时），无样本为0
func AvgResolutionHours(requests []*entity.Request) float64 {
	var sum float64
	var n int
	for _, req := range requests {
		if req.Status != entity.StatusCompleted || req.ActualCompletionTime == nil {
			continue
		}
		sum += req.ActualCompletionTime.Sub(req.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// AvgResponseHoursByPriority 按优先级统计平均响应时长（小时）
func AvgResponseHoursByPriority(requests []*entity.Request) map[entity.Priority]float64 {
	sums := map[entity.Priority]float64{}
	counts := map[entity.Priority]int{}
	for _, req := range requests {
		if req.ActualResponseTime == nil {
			continue
		}
		sums[req.Priority] += req.ActualResponseTime.Sub(req.CreatedAt).Hours()
		counts[req.Priority]++
	}
	out := make(map[entity.Priority]float64, 3)
	for _, p := range []entity.Priority{entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow} {
		if counts[p] == 0 {
			out[p] = 0
			continue
		}
		out[p] = round2(sums[p] / float64(counts[p]))
	}
	return out
}

// ResponseHitRate 按时响应率，无可判定样本视为100%
func ResponseHitRate(requests []*entity.Request) float64 {
	var met, total int
	for _, req := range requests {
		m, ok := sla.ResponseMet(req)
		if !ok {
			continue
		}
		total++
		if m {
			met++
		}
	}
	if total == 0 {
		return 100
	}
	return round2(float64(met) / float64(total) * 100)
}

// SatisfactionAverage 满意度均值（1-5），无评分为0
func SatisfactionAverage(requests []*entity.Request) float64 {
	var sum, n int
	for _, req := range requests {
		if req.SatisfactionRating == nil {
			continue
		}
		sum += *req.SatisfactionRating
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(float64(sum) / float64(n))
}

// CostWithinEstimateRate 实际成本不超预算的比例，ok 为 false 表示无成本样本
func CostWithinEstimateRate(requests []*entity.Request) (rate float64, ok bool) {
	var within, total int
	for _, req := range requests {
		if req.CostEstimate == nil || req.ActualCost == nil {
			continue
		}
		total++
		if *req.ActualCost <= *req.CostEstimate {
			within++
		}
	}
	if total == 0 {
		return 0, false
	}
	return round2(float64(within) / float64(total) * 100), true
}

// DataCompletenessRate 已完成请求中带满意度评分的比例，无样本为0
func DataCompletenessRate(requests []*entity.Request) float64 {
	var rated, total int
	for _, req := range requests {
		if req.Status != entity.StatusCompleted {
			continue
		}
		total++
		if req.SatisfactionRating != nil {
			rated++
		}
	}
	if total == 0 {
		return 0
	}
	return round2(float64(rated) / float64(total) * 100)
}

// CountByDivision 按发起战区统计请求量，无战区归入空键
func CountByDivision(requests []*entity.Request) map[string]int {
	out := map[string]int{}
	for _, req := range requests {
		key := ""
		if req.RequesterDivisionID != nil {
			key = *req.RequesterDivisionID
		}
		out[key]++
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
