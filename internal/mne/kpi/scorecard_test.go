package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

func TestRatingThresholds(t *testing.T) {
	assert.Equal(t, entity.RatingOutstanding, RatingFor(100))
	assert.Equal(t, entity.RatingOutstanding, RatingFor(90))
	assert.Equal(t, entity.RatingVeryGood, RatingFor(89.99))
	assert.Equal(t, entity.RatingVeryGood, RatingFor(80))
	assert.Equal(t, entity.RatingGood, RatingFor(79.99))
	assert.Equal(t, entity.RatingGood, RatingFor(70))
	assert.Equal(t, entity.RatingNeedsImprovement, RatingFor(60))
	assert.Equal(t, entity.RatingUnsatisfactory, RatingFor(59.99))
	assert.Equal(t, entity.RatingUnsatisfactory, RatingFor(0))
}

func TestComposeScorecardPerfect(t *testing.T) {
	res := ComposeScorecard(ScorecardInput{
		ResponseHitRate:   100,
		CompletionHitRate: 100,
		ComplianceRate:    100,
		CompletenessRate:  100,
		CostWithinRate:    100,
		HasCostData:       true,
		SatisfactionAvg:   5,
		HasSatisfaction:   true,
	})
	assert.InDelta(t, 96, res.Efficiency, 0.01)
	assert.InDelta(t, 95, res.Compliance, 0.01)
	assert.InDelta(t, 92.5, res.Cost, 0.01)
	assert.InDelta(t, 100, res.Satisfaction, 0.01)
	assert.Equal(t, entity.RatingOutstanding, res.Rating)
}

func TestComposeScorecardDefaults(t *testing.T) {
	// No cost data and no ratings: cost dimension uses the fixed baseline,
	// satisfaction defaults to full marks.
	res := ComposeScorecard(ScorecardInput{
		ResponseHitRate:   80,
		CompletionHitRate: 80,
		ComplianceRate:    80,
		CompletenessRate:  80,
	})
	assert.InDelta(t, 87.5, res.Cost, 0.01)
	assert.InDelta(t, 100, res.Satisfaction, 0.01)
}

func TestComposeScorecardSatisfactionScale(t *testing.T) {
	// Average of 3 on a 1-5 scale maps to 50 on the 0-100 dimension.
	res := ComposeScorecard(ScorecardInput{
		SatisfactionAvg: 3,
		HasSatisfaction: true,
	})
	assert.InDelta(t, 50, res.Satisfaction, 0.01)

	// Average of 1 maps to 0.
	res = ComposeScorecard(ScorecardInput{
		SatisfactionAvg: 1,
		HasSatisfaction: true,
	})
	assert.InDelta(t, 0, res.Satisfaction, 0.01)
}

func TestComposeScorecardWeights(t *testing.T) {
	res := ComposeScorecard(ScorecardInput{
		ResponseHitRate:   100,
		CompletionHitRate: 100,
		ComplianceRate:    100,
		CompletenessRate:  100,
		CostWithinRate:    100,
		HasCostData:       true,
		SatisfactionAvg:   5,
		HasSatisfaction:   true,
	})
	expected := 0.25*res.Efficiency + 0.30*res.Compliance + 0.20*res.Cost + 0.25*res.Satisfaction
	assert.InDelta(t, expected, res.Total, 0.01)
}
