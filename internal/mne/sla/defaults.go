package sla

import (
	"github.com/tebita/resourcehub/internal/mne/entity"
)

// Budget SLA时限预算（小时，允许小数）
type Budget struct {
	ResponseHours   float64 `json:"response_hours"`
	CompletionHours float64 `json:"completion_hours"`
}

// priorityDefaults 按优先级的兜底时限
var priorityDefaults = map[entity.Priority]Budget{
	entity.PriorityHigh:   {ResponseHours: 2, CompletionHours: 24},
	entity.PriorityMedium: {ResponseHours: 8, CompletionHours: 72},
	entity.PriorityLow:    {ResponseHours: 24, CompletionHours: 168},
}

// resourceDefaults 按资源类型细化的时限矩阵，未覆盖的类型回落到优先级兜底
var resourceDefaults = map[entity.ResourceType]map[entity.Priority]Budget{
	entity.ResourceFinance: {
		entity.PriorityHigh:   {ResponseHours: 2, CompletionHours: 24},
		entity.PriorityMedium: {ResponseHours: 8, CompletionHours: 48},
		entity.PriorityLow:    {ResponseHours: 24, CompletionHours: 120},
	},
	entity.ResourceLogistics: {
		entity.PriorityHigh:   {ResponseHours: 0.5, CompletionHours: 1},
		entity.PriorityMedium: {ResponseHours: 2, CompletionHours: 24},
		entity.PriorityLow:    {ResponseHours: 24, CompletionHours: 48},
	},
	entity.ResourceFleet: {
		entity.PriorityHigh:   {ResponseHours: 0.5, CompletionHours: 24},
		entity.PriorityMedium: {ResponseHours: 4, CompletionHours: 48},
		entity.PriorityLow:    {ResponseHours: 24, CompletionHours: 72},
	},
	entity.ResourceHR: {
		entity.PriorityHigh:   {ResponseHours: 4, CompletionHours: 24},
		entity.PriorityMedium: {ResponseHours: 24, CompletionHours: 120},
		entity.PriorityLow:    {ResponseHours: 48, CompletionHours: 120},
	},
	entity.ResourceICT: {
		entity.PriorityHigh:   {ResponseHours: 1, CompletionHours: 24},
		entity.PriorityMedium: {ResponseHours: 24, CompletionHours: 48},
		entity.PriorityLow:    {ResponseHours: 48, CompletionHours: 168},
	},
}

// Defaults 返回资源类型与优先级对应的默认时限
func Defaults(rt entity.ResourceType, p entity.Priority) Budget {
	if m, ok := resourceDefaults[rt]; ok {
		if b, ok := m[p]; ok {
			return b
		}
	}
	if b, ok := priorityDefaults[p]; ok {
		return b
	}
	return priorityDefaults[entity.PriorityMedium]
}
