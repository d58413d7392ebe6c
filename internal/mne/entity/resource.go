package entity

import (
	"time"
)

// FleetDetail 车队请求明细（车辆/行程KPI口径）
type FleetDetail struct {
	ID                string     `json:"id" gorm:"primaryKey;size:36"`
	RequestID         string     `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	VehicleAssigned   string     `json:"vehicle_assigned" gorm:"size:100"`
	DriverAssigned    string     `json:"driver_assigned" gorm:"size:200"`
	DispatchTime      *time.Time `json:"dispatch_time"`
	ReturnTime        *time.Time `json:"return_time"`
	FuelUsed          *float64   `json:"fuel_used"`
	KMTraveled        *float64   `json:"km_traveled"`
	TripCompleted     bool       `json:"trip_completed" gorm:"default:false"`
	BreakdownOccurred bool       `json:"breakdown_occurred" gorm:"default:false"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (FleetDetail) TableName() string {
	return "fleet_details"
}

// HRDeployment 人力派遣明细
type HRDeployment struct {
	ID                     string     `json:"id" gorm:"primaryKey;size:36"`
	RequestID              string     `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	StaffAssigned          string     `json:"staff_assigned" gorm:"size:200"`
	CompetencyRequired     string     `json:"competency_required" gorm:"size:200"`
	DeploymentDurationDays *int       `json:"deployment_duration_days"`
	ActualStartDate        *time.Time `json:"actual_start_date"`
	ActualEndDate          *time.Time `json:"actual_end_date"`
	OvertimeHours          *float64   `json:"overtime_hours"`
	DeploymentFilled       bool       `json:"deployment_filled" gorm:"default:false"`
	CreatedAt              time.Time  `json:"created_at"`
}

func (HRDeployment) TableName() string {
	return "hr_deployments"
}

// FinanceTransaction 财务处理明细
type FinanceTransaction struct {
	ID                        string     `json:"id" gorm:"primaryKey;size:36"`
	RequestID                 string     `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	TransactionType           string     `json:"transaction_type" gorm:"size:100"`
	Amount                    *float64   `json:"amount" gorm:"type:decimal(14,2)"`
	ProcessingOfficer         string     `json:"processing_officer" gorm:"size:200"`
	SupportingDocsComplete    bool       `json:"supporting_docs_complete" gorm:"default:false"`
	DocumentCompletenessScore *int       `json:"document_completeness_score"`
	PaymentAccuracy           bool       `json:"payment_accuracy" gorm:"default:true"`
	DateReceived              *time.Time `json:"date_received"`
	DateProcessed             *time.Time `json:"date_processed"`
	CreatedAt                 time.Time  `json:"created_at"`
}

func (FinanceTransaction) TableName() string {
	return "finance_transactions"
}

// ICTTicket ICT工单明细
type ICTTicket struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID             string    `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	TicketNumber          string    `json:"ticket_number" gorm:"size:100;uniqueIndex"`
	ProblemType           string    `json:"problem_type" gorm:"size:200"`
	Severity              string    `json:"severity" gorm:"size:50"`
	TechnicianAssigned    string    `json:"technician_assigned" gorm:"size:200"`
	ResolutionTimeMinutes *int      `json:"resolution_time_minutes"`
	Escalated             bool      `json:"escalated" gorm:"default:false"`
	Reopened              bool      `json:"reopened" gorm:"default:false"`
	SystemDowntimeMinutes *int      `json:"system_downtime_minutes"`
	CreatedAt             time.Time `json:"created_at"`
}

func (ICTTicket) TableName() string {
	return "ict_tickets"
}

// LogisticsDetail 物流/补给明细
type LogisticsDetail struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID             string    `json:"request_id" gorm:"size:36;not null;uniqueIndex"`
	ItemRequested         string    `json:"item_requested" gorm:"size:300"`
	QuantityRequested     *float64  `json:"quantity_requested"`
	QuantityDelivered     *float64  `json:"quantity_delivered"`
	StockAvailable        bool      `json:"stock_available" gorm:"default:true"`
	LeadTimeDays          *int      `json:"lead_time_days"`
	RequisitionAccurate   bool      `json:"requisition_accurate" gorm:"default:true"`
	DocumentationComplete bool      `json:"documentation_complete" gorm:"default:true"`
	CostPerItem           *float64  `json:"cost_per_item" gorm:"type:decimal(12,2)"`
	CreatedAt             time.Time `json:"created_at"`
}

func (LogisticsDetail) TableName() string {
	return "logistics_details"
}
