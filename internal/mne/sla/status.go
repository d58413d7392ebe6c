package sla

import (
	"fmt"
	"math"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

// Status 完成时限维度的SLA状态
type Status string

const (
	StatusNoSLA           Status = "NO_SLA"
	StatusOnTrack         Status = "ON_TRACK"
	StatusAtRisk50        Status = "AT_RISK_50"
	StatusAtRisk80        Status = "AT_RISK_80"
	StatusOverdue         Status = "OVERDUE"
	StatusCompletedOnTime Status = "COMPLETED_ON_TIME"
	StatusCompletedLate   Status = "COMPLETED_LATE"
)

// ResponseState 响应时限维度的状态
type ResponseState string

const (
	ResponseOnTrack ResponseState = "ON_TRACK"
	ResponseDueSoon ResponseState = "DUE_SOON"
	ResponseOverdue ResponseState = "OVERDUE"
	ResponseUnknown ResponseState = "UNKNOWN"
)

// Classify 计算请求在 now 时刻的完成时限状态。
// 已完成的请求按实际完成时间与截止时间比较（相等视为按时）；
// 被拒绝或取消的请求不再参与SLA评估。
func Classify(req *entity.Request, now time.Time) Status {
	switch req.Status {
	case entity.StatusRejected, entity.StatusCancelled:
		return StatusNoSLA
	case entity.StatusCompleted:
		if req.ActualCompletionTime != nil && req.SLACompletionDeadline != nil {
			if !req.ActualCompletionTime.After(*req.SLACompletionDeadline) {
				return StatusCompletedOnTime
			}
			return StatusCompletedLate
		}
	}
	if req.SLACompletionDeadline == nil || req.CreatedAt.IsZero() {
		return StatusNoSLA
	}
	deadline := *req.SLACompletionDeadline
	if now.After(deadline) {
		return StatusOverdue
	}
	total := deadline.Sub(req.CreatedAt)
	if total <= 0 {
		return StatusOverdue
	}
	elapsed := now.Sub(req.CreatedAt)
	percent := float64(elapsed) / float64(total) * 100
	switch {
	case percent >= 80:
		return StatusAtRisk80
	case percent >= 50:
		return StatusAtRisk50
	default:
		return StatusOnTrack
	}
}

// ClassifyResponse 计算响应时限状态：已响应或无截止时间时为 UNKNOWN，
// 剩余不足1小时为 DUE_SOON。
func ClassifyResponse(req *entity.Request, now time.Time) ResponseState {
	if req.ActualResponseTime != nil || req.SLAResponseDeadline == nil {
		return ResponseUnknown
	}
	deadline := *req.SLAResponseDeadline
	if now.After(deadline) {
		return ResponseOverdue
	}
	if deadline.Sub(now) < time.Hour {
		return ResponseDueSoon
	}
	return ResponseOnTrack
}

// CompletionMet 已完成请求是否按时，ok 为 false 表示无法判定
func CompletionMet(req *entity.Request) (met, ok bool) {
	if req.ActualCompletionTime == nil || req.SLACompletionDeadline == nil {
		return false, false
	}
	return !req.ActualCompletionTime.After(*req.SLACompletionDeadline), true
}

// ResponseMet 是否按时响应，ok 为 false 表示无法判定
func ResponseMet(req *entity.Request) (met, ok bool) {
	if req.ActualResponseTime == nil || req.SLAResponseDeadline == nil {
		return false, false
	}
	return !req.ActualResponseTime.After(*req.SLAResponseDeadline), true
}

// ComplianceReport 单个请求的达标明细
type ComplianceReport struct {
	ResponseMet      *bool   `json:"response_met"`
	CompletionMet    *bool   `json:"completion_met"`
	ResponseDelayHrs float64 `json:"response_delay_hours"`
	CompletionDelay  float64 `json:"completion_delay_hours"`
}

// ComplianceOf 汇总请求的响应/完成达标情况及超时小时数
func ComplianceOf(req *entity.Request) ComplianceReport {
	var rep ComplianceReport
	if met, ok := ResponseMet(req); ok {
		v := met
		rep.ResponseMet = &v
		if !met {
			rep.ResponseDelayHrs = round2(req.ActualResponseTime.Sub(*req.SLAResponseDeadline).Hours())
		}
	}
	if met, ok := CompletionMet(req); ok {
		v := met
		rep.CompletionMet = &v
		if !met {
			rep.CompletionDelay = round2(req.ActualCompletionTime.Sub(*req.SLACompletionDeadline).Hours())
		}
	}
	return rep
}

// delayReasonTemplates 各资源类型的延误说明模板
var delayReasonTemplates = map[entity.ResourceType]string{
	entity.ResourceFleet:      "Vehicle availability / maintenance delay: %s",
	entity.ResourceHR:         "Staffing shortage / approval pending: %s",
	entity.ResourceFinance:    "Documentation incomplete / approval chain delay: %s",
	entity.ResourceICT:        "Awaiting parts / escalated to vendor: %s",
	entity.ResourceLogistics:  "Stock-out / supplier lead time: %s",
	entity.ResourceFacilities: "Contractor scheduling / material delay: %s",
}

// DelayReasonTemplate 返回资源类型对应的延误说明模板
func DelayReasonTemplate(rt entity.ResourceType) string {
	if t, ok := delayReasonTemplates[rt]; ok {
		return t
	}
	return "Processing delay: %s"
}

// FormatDelayReason 按模板生成延误说明
func FormatDelayReason(rt entity.ResourceType, detail string) string {
	return fmt.Sprintf(DelayReasonTemplate(rt), detail)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
