package sla

import (
	"errors"
	"math"
	"time"

	"github.com/tebita/resourcehub/internal/mne/entity"
)

var (
	// ErrAlreadyStamped 请求已写入SLA快照，不允许二次盖章
	ErrAlreadyStamped = errors.New("sla: request already stamped")
	// ErrIncompleteRequest 缺少盖章所需字段
	ErrIncompleteRequest = errors.New("sla: request missing created time")
	// ErrInvalidBudget 完成时限小于响应时限
	ErrInvalidBudget = errors.New("sla: completion hours less than response hours")
)

// hoursToDuration 小数小时转 Duration，不做取整
func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// Stamp 将时限预算写入请求快照：整数小时向下取整（响应至少1小时），
// 截止时间按未取整的小数小时从创建时间推算。
func Stamp(req *entity.Request, b Budget) error {
	if req.Stamped() {
		return ErrAlreadyStamped
	}
	if req.CreatedAt.IsZero() {
		return ErrIncompleteRequest
	}
	if b.CompletionHours < b.ResponseHours {
		return ErrInvalidBudget
	}

	respHours := int(math.Floor(b.ResponseHours))
	if respHours < 1 {
		respHours = 1
	}
	compHours := int(math.Floor(b.CompletionHours))

	respDeadline := req.CreatedAt.Add(hoursToDuration(b.ResponseHours))
	compDeadline := req.CreatedAt.Add(hoursToDuration(b.CompletionHours))

	req.SLAResponseTimeHours = &respHours
	req.SLACompletionTimeHours = &compHours
	req.SLAResponseDeadline = &respDeadline
	req.SLACompletionDeadline = &compDeadline
	return nil
}
