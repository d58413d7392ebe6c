package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/kpi"
	"github.com/tebita/resourcehub/internal/mne/repository"
)

// dashboardCacheKey 未过滤仪表盘的缓存键
const dashboardCacheKey = "reports:dashboard"

// ReportService 报表服务
type ReportService struct {
	requestRepo   *repository.RequestRepository
	scorecardRepo *repository.ScorecardRepository
	orgRepo       *repository.OrgRepository
	detailRepo    *repository.ResourceDetailRepository
	rdb           *redis.Client
	cfg           *config.Config
}

// NewReportService 创建报表服务
func NewReportService(requestRepo *repository.RequestRepository, scorecardRepo *repository.ScorecardRepository, orgRepo *repository.OrgRepository, detailRepo *repository.ResourceDetailRepository, rdb *redis.Client, cfg *config.Config) *ReportService {
	return &ReportService{
		requestRepo:   requestRepo,
		scorecardRepo: scorecardRepo,
		orgRepo:       orgRepo,
		detailRepo:    detailRepo,
		rdb:           rdb,
		cfg:           cfg,
	}
}

// Compliance 统计区间内的SLA合规率
func (s *ReportService) Compliance(ctx context.Context, filter repository.ReportFilter) (kpi.ComplianceResult, error) {
	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return kpi.ComplianceResult{}, err
	}
	return kpi.Compliance(requests, kpi.Options{IncludeActiveOverdue: true, Now: time.Now()}), nil
}

// Dashboard 仪表盘汇总
type Dashboard struct {
	TotalRequests   int                          `json:"total_requests"`
	ByStatus        map[entity.RequestStatus]int `json:"by_status"`
	ByResourceType  map[entity.ResourceType]int  `json:"by_resource_type"`
	ByDivision      map[string]int               `json:"by_division"`
	Compliance      kpi.ComplianceResult         `json:"compliance"`
	FulfillmentRate float64                      `json:"fulfillment_rate"`
	AvgResolution   float64                      `json:"avg_resolution_hours"`
	AvgResponse     map[entity.Priority]float64  `json:"avg_response_hours_by_priority"`
	ResponseHitRate float64                      `json:"response_hit_rate"`
	SatisfactionAvg float64                      `json:"satisfaction_avg"`
	GeneratedAt     time.Time                    `json:"generated_at"`
}

// GetDashboard 计算仪表盘。未过滤的全局视图走Redis短缓存，
// 带过滤条件的视图每次现算。
func (s *ReportService) GetDashboard(ctx context.Context, filter repository.ReportFilter) (*Dashboard, error) {
	unfiltered := filter.DivisionID == nil && filter.DepartmentID == nil &&
		filter.ResourceType == "" && filter.Start == nil && filter.End == nil

	if unfiltered && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var d Dashboard
			if err := json.Unmarshal([]byte(cached), &d); err == nil {
				return &d, nil
			}
		}
	}

	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Dashboard{
		TotalRequests:   len(requests),
		ByStatus:        map[entity.RequestStatus]int{},
		ByResourceType:  map[entity.ResourceType]int{},
		ByDivision:      kpi.CountByDivision(requests),
		Compliance:      kpi.Compliance(requests, kpi.Options{IncludeActiveOverdue: true, Now: now}),
		FulfillmentRate: kpi.FulfillmentRate(requests),
		AvgResolution:   kpi.AvgResolutionHours(requests),
		AvgResponse:     kpi.AvgResponseHoursByPriority(requests),
		ResponseHitRate: kpi.ResponseHitRate(requests),
		SatisfactionAvg: kpi.SatisfactionAverage(requests),
		GeneratedAt:     now,
	}
	for _, req := range requests {
		d.ByStatus[req.Status]++
		d.ByResourceType[req.ResourceType]++
	}

	if unfiltered && s.rdb != nil {
		if data, err := json.Marshal(d); err == nil {
			ttl := s.cfg.SLA.DashboardCacheTTL
			if ttl <= 0 {
				ttl = time.Minute
			}
			s.rdb.Set(ctx, dashboardCacheKey, data, ttl)
		}
	}
	return d, nil
}

// InvalidateDashboard 请求数据变更后失效仪表盘缓存
func (s *ReportService) InvalidateDashboard(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, dashboardCacheKey)
	}
}

// GenerateScorecard 计算区间记分卡并保存快照
func (s *ReportService) GenerateScorecard(ctx context.Context, filter repository.ReportFilter, createdBy string) (*entity.Scorecard, kpi.ScorecardResult, error) {
	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, kpi.ScorecardResult{}, err
	}

	now := time.Now()
	compliance := kpi.Compliance(requests, kpi.Options{IncludeActiveOverdue: true, Now: now})
	costRate, hasCost := kpi.CostWithinEstimateRate(requests)
	satAvg := kpi.SatisfactionAverage(requests)

	in := kpi.ScorecardInput{
		ResponseHitRate: kpi.ResponseHitRate(requests),
		// 效率维度的完成项看按时完成（合规率），完成率只关心是否完成，晚完成也算
		CompletionHitRate: compliance.Rate,
		ComplianceRate:    compliance.Rate,
		CompletenessRate:  kpi.DataCompletenessRate(requests),
		CostWithinRate:    costRate,
		HasCostData:       hasCost,
		SatisfactionAvg:   satAvg,
		HasSatisfaction:   satAvg > 0,
	}
	result := kpi.ComposeScorecard(in)

	periodStart := now.AddDate(0, -1, 0)
	if filter.Start != nil {
		periodStart = *filter.Start
	}
	periodEnd := now
	if filter.End != nil {
		periodEnd = *filter.End
	}

	sc := &entity.Scorecard{
		ID:                     uuid.New().String(),
		PeriodStart:            periodStart,
		PeriodEnd:              periodEnd,
		DivisionID:             filter.DivisionID,
		DepartmentID:           filter.DepartmentID,
		ServiceEfficiencyScore: result.Efficiency,
		ComplianceScore:        result.Compliance,
		CostOptimizationScore:  result.Cost,
		SatisfactionScore:      result.Satisfaction,
		TotalScore:             result.Total,
		Rating:                 result.Rating,
		CreatedBy:              createdBy,
		CreatedAt:              now,
	}
	if err := s.scorecardRepo.Create(ctx, sc); err != nil {
		return nil, kpi.ScorecardResult{}, err
	}
	return sc, result, nil
}

// ListScorecards 查询记分卡历史
func (s *ReportService) ListScorecards(ctx context.Context, divisionID string, limit int) ([]entity.Scorecard, error) {
	return s.scorecardRepo.List(ctx, divisionID, limit)
}

// TrendReport 趋势报表
type TrendReport struct {
	Period entity.TrendPeriod `json:"period"`
	Volume kpi.MultiSeries    `json:"volume"`
	Lines  []kpi.Series       `json:"lines"`
}

// Trend 生成趋势报表：请求量、合规率、满意度、处理效率
func (s *ReportService) Trend(ctx context.Context, period entity.TrendPeriod, filter repository.ReportFilter) (*TrendReport, error) {
	if !period.Valid() {
		period = entity.PeriodDaily
	}
	now := time.Now()
	start := kpi.TimeRange(period, now)
	if filter.Start == nil {
		filter.Start = &start
	}
	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &TrendReport{
		Period: period,
		Volume: kpi.VolumeTrend(period, requests, *filter.Start, now),
		Lines: []kpi.Series{
			kpi.ComplianceTrend(period, requests, *filter.Start, now, now),
			kpi.SatisfactionTrend(period, requests, *filter.Start, now),
			kpi.EfficiencyTrend(period, requests, *filter.Start, now),
		},
	}, nil
}

// ResourceKPIReport 各资源类型专项KPI汇总
type ResourceKPIReport struct {
	Fleet     kpi.FleetKPI     `json:"fleet"`
	HR        kpi.HRKPI        `json:"hr"`
	Finance   kpi.FinanceKPI   `json:"finance"`
	ICT       kpi.ICTKPI       `json:"ict"`
	Logistics kpi.LogisticsKPI `json:"logistics"`
}

// ResourceKPIs 按资源类型计算专项KPI（明细表驱动，时间范围取自filter）
func (s *ReportService) ResourceKPIs(ctx context.Context, filter repository.ReportFilter) (*ResourceKPIReport, error) {
	fleet, err := s.detailRepo.ListFleet(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	hr, err := s.detailRepo.ListHR(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	finance, err := s.detailRepo.ListFinance(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	tickets, err := s.detailRepo.ListICT(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	logistics, err := s.detailRepo.ListLogistics(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	statusByRequest := make(map[string]entity.RequestStatus, len(requests))
	var logisticsRequests []*entity.Request
	for _, req := range requests {
		statusByRequest[req.ID] = req.Status
		if req.ResourceType == entity.ResourceLogistics {
			logisticsRequests = append(logisticsRequests, req)
		}
	}

	return &ResourceKPIReport{
		Fleet: kpi.FleetKPI{
			TripCompletionRate: kpi.TripCompletionRate(fleet),
			AvgTurnaroundHours: kpi.AvgTurnaroundHours(fleet),
			FuelEfficiencyKMPL: kpi.FuelEfficiency(fleet),
			BreakdownCount:     kpi.BreakdownCount(fleet),
		},
		HR: kpi.HRKPI{
			DeploymentFillingRate: kpi.DeploymentFillingRate(hr),
			OvertimeUsageRate:     kpi.OvertimeUsageRate(hr),
		},
		Finance: kpi.FinanceKPI{
			PaymentTurnaroundDays:     kpi.PaymentTurnaroundDays(finance),
			PaymentAccuracyRate:       kpi.PaymentAccuracyRate(finance),
			DocumentCompletenessScore: kpi.DocumentCompletenessScore(finance),
		},
		ICT: kpi.ICTKPI{
			TicketResolutionRate: kpi.TicketResolutionRate(tickets, statusByRequest),
			ReopenedRate:         kpi.ReopenedRate(tickets),
			AvgDowntimeMinutes:   kpi.AvgDowntimeMinutes(tickets),
		},
		Logistics: kpi.LogisticsKPI{
			OnTimeDeliveryRate:   kpi.OnTimeDeliveryRate(logisticsRequests),
			StockFulfillmentRate: kpi.StockFulfillmentRate(logistics),
			RequisitionAccuracy:  kpi.RequisitionAccuracy(logistics),
		},
	}, nil
}

// DivisionSummary 战区维度汇总
type DivisionSummary struct {
	DivisionID   string               `json:"division_id"`
	DivisionName string               `json:"division_name"`
	Total        int                  `json:"total"`
	Compliance   kpi.ComplianceResult `json:"compliance"`
	Satisfaction float64              `json:"satisfaction_avg"`
}

// ByDivision 按战区逐个汇总
func (s *ReportService) ByDivision(ctx context.Context, filter repository.ReportFilter) ([]DivisionSummary, error) {
	divisions, err := s.orgRepo.ListDivisions(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	summaries := make([]DivisionSummary, 0, len(divisions))
	for _, div := range divisions {
		f := filter
		id := div.ID
		f.DivisionID = &id
		requests, err := s.requestRepo.ListForReport(ctx, f)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, DivisionSummary{
			DivisionID:   div.ID,
			DivisionName: div.Name,
			Total:        len(requests),
			Compliance:   kpi.Compliance(requests, kpi.Options{IncludeActiveOverdue: true, Now: now}),
			Satisfaction: kpi.SatisfactionAverage(requests),
		})
	}
	return summaries, nil
}
