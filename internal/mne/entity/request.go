package entity

import (
	"time"
)

// Request 跨部门服务请求
//
// SLA四个快照字段在创建时一次性写入，后续请求的优先级或指派变更都不会重算，
// 保证历史合规统计稳定。
type Request struct {
	ID           string       `json:"id" gorm:"primaryKey;size:36"`
	Code         string       `json:"code" gorm:"size:64;not null;uniqueIndex"` // REQ-<TYPE>-<DATE>-<SEQ>
	ResourceType ResourceType `json:"resource_type" gorm:"size:16;not null;index"`
	ActivityType *string      `json:"activity_type" gorm:"size:128"`
	Priority     Priority     `json:"priority" gorm:"size:8;not null;default:MEDIUM"`
	Status       RequestStatus `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	Description  string       `json:"description" gorm:"type:text;not null"`
	Notes        string       `json:"notes" gorm:"type:text"`

	// 发起方组织范围（低层级可为空，表示挂在更粗的层级上）
	RequesterID              string  `json:"requester_id" gorm:"size:36;not null"`
	RequesterDivisionID      *string `json:"requester_division_id" gorm:"size:36;index"`
	RequesterDepartmentID    *string `json:"requester_department_id" gorm:"size:36"`
	RequesterSubDepartmentID *string `json:"requester_sub_department_id" gorm:"size:36"`

	// 受理方组织范围
	AssignedDivisionID      *string `json:"assigned_division_id" gorm:"size:36;index"`
	AssignedDepartmentID    *string `json:"assigned_department_id" gorm:"size:36"`
	AssignedSubDepartmentID *string `json:"assigned_sub_department_id" gorm:"size:36"`
	AssignedUserID          *string `json:"assigned_user_id" gorm:"size:36"`

	// SLA快照（创建时写入，永不重算）
	SLAResponseTimeHours   *int       `json:"sla_response_time_hours"`
	SLACompletionTimeHours *int       `json:"sla_completion_time_hours"`
	SLAResponseDeadline    *time.Time `json:"sla_response_deadline"`
	SLACompletionDeadline  *time.Time `json:"sla_completion_deadline" gorm:"index"`

	// 实际用时
	ActualResponseTime   *time.Time `json:"actual_response_time"`
	ActualCompletionTime *time.Time `json:"actual_completion_time"`
	ReasonForDelay       string     `json:"reason_for_delay" gorm:"type:text"`

	// 成本
	CostEstimate *float64 `json:"cost_estimate" gorm:"type:decimal(12,2)"`
	ActualCost   *float64 `json:"actual_cost" gorm:"type:decimal(12,2)"`

	// 满意度（1-5）
	SatisfactionRating  *int   `json:"satisfaction_rating"`
	SatisfactionComment string `json:"satisfaction_comment" gorm:"type:text"`

	// 附件对象键
	Attachments JSONBArray `json:"attachments" gorm:"type:jsonb"`

	// 时间戳
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	AcknowledgedBy *string    `json:"acknowledged_by" gorm:"size:36"`
	CompletedAt    *time.Time `json:"completed_at"`
	ValidatedAt    *time.Time `json:"validated_at"`
	ValidatedBy    *string    `json:"validated_by" gorm:"size:36"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// 关联
	Requester          *User                 `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	RequesterDivision  *Division             `json:"requester_division,omitempty" gorm:"foreignKey:RequesterDivisionID"`
	AssignedDivision   *Division             `json:"assigned_division,omitempty" gorm:"foreignKey:AssignedDivisionID"`
	Alerts             []SLAAlert            `json:"alerts,omitempty" gorm:"foreignKey:RequestID"`
	Satisfaction       *CustomerSatisfaction `json:"satisfaction,omitempty" gorm:"foreignKey:RequestID"`
}

func (Request) TableName() string {
	return "requests"
}

// Stamped SLA快照是否已写入
func (r *Request) Stamped() bool {
	return r.SLACompletionTimeHours != nil
}

// CustomerSatisfaction 请求满意度评价
type CustomerSatisfaction struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID            string    `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	TimelinessScore      *int      `json:"timeliness_score"`
	QualityScore         *int      `json:"quality_score"`
	CommunicationScore   *int      `json:"communication_score"`
	ProfessionalismScore *int      `json:"professionalism_score"`
	OverallScore         int       `json:"overall_score" gorm:"not null"`
	Comments             string    `json:"comments" gorm:"type:text"`
	SubmittedBy          string    `json:"submitted_by" gorm:"size:36"`
	SubmittedAt          time.Time `json:"submitted_at"`
}

func (CustomerSatisfaction) TableName() string {
	return "customer_satisfaction"
}
