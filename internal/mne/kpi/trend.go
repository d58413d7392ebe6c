package kpi

import (
	"fmt"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

// Point 趋势图上的一个数据点
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series 单条趋势线
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// MultiSeries 多条趋势线（同一组标签）
type MultiSeries struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// TimeRange 返回趋势粒度对应的统计区间起点
func TimeRange(period entity.TrendPeriod, now time.Time) time.Time {
	switch period {
	case entity.PeriodDaily:
		return now.AddDate(0, 0, -30)
	case entity.PeriodWeekly:
		return now.AddDate(0, 0, -12*7)
	case entity.PeriodMonthly:
		return now.AddDate(0, 0, -365)
	case entity.PeriodYearly:
		return now.AddDate(-3, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// bucketLabel 按粒度生成时间桶标签
func bucketLabel(period entity.TrendPeriod, t time.Time) string {
	switch period {
	case entity.PeriodDaily:
		return t.Format("Jan 02")
	case entity.PeriodWeekly:
		// 带ISO年份，跨年窗口里不同年的同号周不会并桶
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case entity.PeriodMonthly:
		return t.Format("Jan 2006")
	case entity.PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("Jan 02")
	}
}

// Labels 生成区间内按时间先后排列的全部桶标签
func Labels(period entity.TrendPeriod, start, end time.Time) []string {
	var labels []string
	seen := map[string]bool{}
	step := func(t time.Time) time.Time {
		switch period {
		case entity.PeriodDaily:
			return t.AddDate(0, 0, 1)
		case entity.PeriodWeekly:
			return t.AddDate(0, 0, 7)
		case entity.PeriodMonthly:
			return t.AddDate(0, 1, 0)
		case entity.PeriodYearly:
			return t.AddDate(1, 0, 0)
		default:
			return t.AddDate(0, 0, 1)
		}
	}
	for t := start; !t.After(end); t = step(t) {
		l := bucketLabel(period, t)
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	return labels
}

// bucketize 按创建时间把请求分桶
func bucketize(period entity.TrendPeriod, requests []*entity.Request) map[string][]*entity.Request {
	buckets := map[string][]*entity.Request{}
	for _, req := range requests {
		l := bucketLabel(period, req.CreatedAt)
		buckets[l] = append(buckets[l], req)
	}
	return buckets
}

// VolumeTrend 请求量趋势：总量、待处理、已完成、被拒绝
func VolumeTrend(period entity.TrendPeriod, requests []*entity.Request, start, end time.Time) MultiSeries {
	labels := Labels(period, start, end)
	buckets := bucketize(period, requests)

	total := make([]Point, len(labels))
	pending := make([]Point, len(labels))
	completed := make([]Point, len(labels))
	rejected := make([]Point, len(labels))
	for i, l := range labels {
		var p, c, rej int
		group := buckets[l]
		for _, req := range group {
			switch req.Status {
			case entity.StatusPending, entity.StatusApprovalPending, entity.StatusApproved:
				p++
			case entity.StatusCompleted:
				c++
			case entity.StatusRejected:
				rej++
			}
		}
		total[i] = Point{Label: l, Value: float64(len(group))}
		pending[i] = Point{Label: l, Value: float64(p)}
		completed[i] = Point{Label: l, Value: float64(c)}
		rejected[i] = Point{Label: l, Value: float64(rej)}
	}
	return MultiSeries{
		Labels: labels,
		Series: []Series{
			{Name: "total", Points: total},
			{Name: "pending", Points: pending},
			{Name: "completed", Points: completed},
			{Name: "rejected", Points: rejected},
		},
	}
}

// ComplianceTrend 合规率趋势，每个时间桶独立计算（计入已超期的活动请求）
func ComplianceTrend(period entity.TrendPeriod, requests []*entity.Request, start, end time.Time, now time.Time) Series {
	labels := Labels(period, start, end)
	buckets := bucketize(period, requests)
	points := make([]Point, len(labels))
	for i, l := range labels {
		res := Compliance(buckets[l], Options{IncludeActiveOverdue: true, Now: now})
		points[i] = Point{Label: l, Value: res.Rate}
	}
	return Series{Name: "sla_compliance", Points: points}
}

// SatisfactionTrend 满意度均值趋势
func SatisfactionTrend(period entity.TrendPeriod, requests []*entity.Request, start, end time.Time) Series {
	labels := Labels(period, start, end)
	buckets := bucketize(period, requests)
	points := make([]Point, len(labels))
	for i, l := range labels {
		points[i] = Point{Label: l, Value: SatisfactionAverage(buckets[l])}
	}
	return Series{Name: "satisfaction", Points: points}
}

// EfficiencyTrend 处理效率趋势：以72小时为基准换算为0-100分
func EfficiencyTrend(period entity.TrendPeriod, requests []*entity.Request, start, end time.Time) Series {
	labels := Labels(period, start, end)
	buckets := bucketize(period, requests)
	points := make([]Point, len(labels))
	for i, l := range labels {
		avg := AvgResolutionHours(buckets[l])
		score := 100 - avg/72*100
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		points[i] = Point{Label: l, Value: round2(score)}
	}
	return Series{Name: "efficiency", Points: points}
}
