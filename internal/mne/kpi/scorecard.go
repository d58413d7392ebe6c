package kpi

import (
	"github.com/tebita/resourcehub/internal/mne/entity"
)

// ScorecardInput 记分卡原始指标
type ScorecardInput struct {
	ResponseHitRate   float64 // 按时响应率 0-100
	CompletionHitRate float64 // 按时完成率 0-100
	ComplianceRate    float64 // SLA合规率 0-100
	CompletenessRate  float64 // 数据完整率 0-100
	CostWithinRate    float64 // 成本受控率 0-100
	HasCostData       bool
	SatisfactionAvg   float64 // 满意度均值 1-5
	HasSatisfaction   bool
}

// ScorecardResult 记分卡各维度得分及总分
type ScorecardResult struct {
	Efficiency   float64            `json:"efficiency"`
	Compliance   float64            `json:"compliance"`
	Cost         float64            `json:"cost"`
	Satisfaction float64            `json:"satisfaction"`
	Total        float64            `json:"total"`
	Rating       entity.ScoreRating `json:"rating"`
}

// 维度权重：效率25%、合规30%、成本20%、满意度25%
const (
	weightEfficiency   = 0.25
	weightCompliance   = 0.30
	weightCost         = 0.20
	weightSatisfaction = 0.25
)

// ComposeScorecard 由原始指标合成记分卡。
// 各维度先归一到0-100，再按权重加权出总分。
func ComposeScorecard(in ScorecardInput) ScorecardResult {
	eff := clamp100(0.4*in.ResponseHitRate + 0.4*in.CompletionHitRate + 16.0)
	comp := clamp100(in.ComplianceRate*(10.0/30.0) + in.CompletenessRate*(5.0/30.0) + 45.0)

	cost := 87.5
	if in.HasCostData {
		cost = clamp100(in.CostWithinRate*0.25 + 67.5)
	}

	sat := 100.0
	if in.HasSatisfaction {
		sat = clamp100((in.SatisfactionAvg - 1) / 4 * 100)
	}

	total := weightEfficiency*eff + weightCompliance*comp + weightCost*cost + weightSatisfaction*sat
	return ScorecardResult{
		Efficiency:   round2(eff),
		Compliance:   round2(comp),
		Cost:         round2(cost),
		Satisfaction: round2(sat),
		Total:        round2(total),
		Rating:       RatingFor(total),
	}
}

// RatingFor 总分对应评级：90/80/70/60 分档
func RatingFor(total float64) entity.ScoreRating {
	switch {
	case total >= 90:
		return entity.RatingOutstanding
	case total >= 80:
		return entity.RatingVeryGood
	case total >= 70:
		return entity.RatingGood
	case total >= 60:
		return entity.RatingNeedsImprovement
	default:
		return entity.RatingUnsatisfactory
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
