package entity

import (
	"time"
)

// SLAPolicy SLA策略
//
// DivisionID/DepartmentID/ActivityType 为空表示该维度不限定（全局规则）。
// 同一作用域元组下的活跃策略必须唯一，由录入侧（PolicyService）保证，
// 解析器只按 created_at, id 排序做确定性兜底。
type SLAPolicy struct {
	ID                   string       `json:"id" gorm:"primaryKey;size:36"`
	Name                 string       `json:"name" gorm:"size:200"`
	DivisionID           *string      `json:"division_id" gorm:"size:36;index"`
	DepartmentID         *string      `json:"department_id" gorm:"size:36"`
	ResourceType         ResourceType `json:"resource_type" gorm:"size:16;not null;index"`
	ActivityType         *string      `json:"activity_type" gorm:"size:128"`
	Priority             Priority     `json:"priority" gorm:"size:8;not null"`
	ResponseTimeHours    float64      `json:"response_time_hours" gorm:"type:decimal(8,2);not null"`
	CompletionTimeHours  float64      `json:"completion_time_hours" gorm:"type:decimal(8,2);not null"`
	IsActive             bool         `json:"is_active" gorm:"default:true;index"`
	CreatedBy            string       `json:"created_by" gorm:"size:36"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

func (SLAPolicy) TableName() string {
	return "sla_policies"
}

// SLAAlert SLA告警记录
//
// (request_id, alert_type) 唯一索引是定时巡检幂等的依据：
// 并发巡检下同一告警至多落库一条。
type SLAAlert struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	RequestID      string     `json:"request_id" gorm:"size:36;not null;uniqueIndex:idx_sla_alerts_request_type"`
	AlertType      AlertType  `json:"alert_type" gorm:"size:24;not null;uniqueIndex:idx_sla_alerts_request_type"`
	SentAt         time.Time  `json:"sent_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	AcknowledgedBy *string    `json:"acknowledged_by" gorm:"size:36"`

	// 关联
	Request *Request `json:"request,omitempty" gorm:"foreignKey:RequestID"`
}

func (SLAAlert) TableName() string {
	return "sla_alerts"
}

// Scorecard 记分卡快照
type Scorecard struct {
	ID                     string      `json:"id" gorm:"primaryKey;size:36"`
	PeriodStart            time.Time   `json:"period_start" gorm:"not null"`
	PeriodEnd              time.Time   `json:"period_end" gorm:"not null"`
	DivisionID             *string     `json:"division_id" gorm:"size:36"`
	DepartmentID           *string     `json:"department_id" gorm:"size:36"`
	ServiceEfficiencyScore float64     `json:"service_efficiency_score" gorm:"type:decimal(5,2)"`
	ComplianceScore        float64     `json:"compliance_score" gorm:"type:decimal(5,2)"`
	CostOptimizationScore  float64     `json:"cost_optimization_score" gorm:"type:decimal(5,2)"`
	SatisfactionScore      float64     `json:"satisfaction_score" gorm:"type:decimal(5,2)"`
	TotalScore             float64     `json:"total_score" gorm:"type:decimal(5,2)"`
	Rating                 ScoreRating `json:"rating" gorm:"size:24"`
	CreatedBy              string      `json:"created_by" gorm:"size:36"`
	CreatedAt              time.Time   `json:"created_at"`
}

func (Scorecard) TableName() string {
	return "scorecards"
}
