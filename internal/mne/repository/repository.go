package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Request        *RequestRepository
	Policy         *PolicyRepository
	Alert          *AlertRepository
	Org            *OrgRepository
	Satisfaction   *SatisfactionRepository
	ResourceDetail *ResourceDetailRepository
	Scorecard      *ScorecardRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Request:        NewRequestRepository(db),
		Policy:         NewPolicyRepository(db),
		Alert:          NewAlertRepository(db),
		Org:            NewOrgRepository(db),
		Satisfaction:   NewSatisfactionRepository(db),
		ResourceDetail: NewResourceDetailRepository(db),
		Scorecard:      NewScorecardRepository(db),
	}
}
