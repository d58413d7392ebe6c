package entity

// Priority 请求优先级
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Valid 是否为合法优先级
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ResourceType 共享资源类型
type ResourceType string

const (
	ResourceFleet      ResourceType = "FLEET"
	ResourceHR         ResourceType = "HR"
	ResourceFinance    ResourceType = "FINANCE"
	ResourceICT        ResourceType = "ICT"
	ResourceLogistics  ResourceType = "LOGISTICS"
	ResourceFacilities ResourceType = "FACILITIES"
	ResourceGeneral    ResourceType = "GENERAL"
)

// Valid 是否为合法资源类型
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceFleet, ResourceHR, ResourceFinance, ResourceICT,
		ResourceLogistics, ResourceFacilities, ResourceGeneral:
		return true
	}
	return false
}

// ResourceTypes 全部资源类型（报表遍历用）
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceFleet, ResourceHR, ResourceFinance, ResourceICT,
		ResourceLogistics, ResourceFacilities, ResourceGeneral,
	}
}

// RequestStatus 请求生命周期状态
type RequestStatus string

const (
	StatusPending         RequestStatus = "PENDING"
	StatusApprovalPending RequestStatus = "APPROVAL_PENDING"
	StatusApproved        RequestStatus = "APPROVED"
	StatusInProgress      RequestStatus = "IN_PROGRESS"
	StatusCompleted       RequestStatus = "COMPLETED"
	StatusRejected        RequestStatus = "REJECTED"
	StatusCancelled       RequestStatus = "CANCELLED"
)

// Valid 是否为合法状态
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApprovalPending, StatusApproved,
		StatusInProgress, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal 是否为终态
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// AlertType SLA告警类型
type AlertType string

const (
	Alert50Percent       AlertType = "50_PERCENT"
	Alert80Percent       AlertType = "80_PERCENT"
	AlertOverdue         AlertType = "OVERDUE"
	AlertResponseOverdue AlertType = "RESPONSE_OVERDUE"
)

// ScoreRating 记分卡评级
type ScoreRating string

const (
	RatingOutstanding      ScoreRating = "OUTSTANDING"
	RatingVeryGood         ScoreRating = "VERY_GOOD"
	RatingGood             ScoreRating = "GOOD"
	RatingNeedsImprovement ScoreRating = "NEEDS_IMPROVEMENT"
	RatingUnsatisfactory   ScoreRating = "UNSATISFACTORY"
)

// TrendPeriod 趋势聚合粒度
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
	PeriodYearly  TrendPeriod = "yearly"
)

// Valid 是否为合法粒度
func (p TrendPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}
