package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/sla"
	"github.com/tebita/resourcehub/internal/mne/sse"
)

// RequestService 服务请求服务
type RequestService struct {
	requestRepo      *repository.RequestRepository
	satisfactionRepo *repository.SatisfactionRepository
	resolver         *sla.Resolver
	reportSvc        *ReportService
	hub              *sse.Hub
}

// NewRequestService 创建服务请求服务
func NewRequestService(requestRepo *repository.RequestRepository, policyRepo *repository.PolicyRepository, satisfactionRepo *repository.SatisfactionRepository, reportSvc *ReportService, hub *sse.Hub) *RequestService {
	return &RequestService{
		requestRepo:      requestRepo,
		satisfactionRepo: satisfactionRepo,
		resolver:         sla.NewResolver(policyRepo),
		reportSvc:        reportSvc,
		hub:              hub,
	}
}

func (s *RequestService) publish(requestID, action string) {
	if s.hub != nil {
		s.hub.PublishRequestUpdate(requestID, action)
	}
}

// CreateRequestInput 创建请求入参
type CreateRequestInput struct {
	ResourceType          entity.ResourceType `json:"resource_type" binding:"required"`
	ActivityType          *string             `json:"activity_type"`
	Priority              entity.Priority     `json:"priority"`
	Description           string              `json:"description" binding:"required"`
	RequesterID           string              `json:"-"`
	RequesterDivisionID   *string             `json:"requester_division_id"`
	RequesterDepartmentID *string             `json:"requester_department_id"`
	AssignedDivisionID    *string             `json:"assigned_division_id"`
	AssignedDepartmentID  *string             `json:"assigned_department_id"`
	CostEstimate          *float64            `json:"cost_estimate"`
	Attachments           []string            `json:"attachments"`
}

// Create 创建请求并写入SLA快照。
// SLA解析或盖章失败时整个创建失败，不会落库无时限的请求。
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (*entity.Request, error) {
	if !in.ResourceType.Valid() {
		return nil, fmt.Errorf("%w: resource type %q", ErrInvalidInput, in.ResourceType)
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: priority %q", ErrInvalidInput, in.Priority)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	now := time.Now()
	req := &entity.Request{
		ID:                    uuid.New().String(),
		ResourceType:          in.ResourceType,
		ActivityType:          in.ActivityType,
		Priority:              in.Priority,
		Status:                entity.StatusPending,
		Description:           in.Description,
		RequesterID:           in.RequesterID,
		RequesterDivisionID:   in.RequesterDivisionID,
		RequesterDepartmentID: in.RequesterDepartmentID,
		AssignedDivisionID:    in.AssignedDivisionID,
		AssignedDepartmentID:  in.AssignedDepartmentID,
		CostEstimate:          in.CostEstimate,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for _, a := range in.Attachments {
		req.Attachments = append(req.Attachments, a)
	}

	code, err := s.generateCode(ctx, in.ResourceType, now)
	if err != nil {
		return nil, fmt.Errorf("generate request code: %w", err)
	}
	req.Code = code

	budget, _, err := s.resolver.ResolveBudget(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resolve sla policy: %w", err)
	}
	if err := sla.Stamp(req, budget); err != nil {
		return nil, fmt.Errorf("stamp sla deadlines: %w", err)
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.reportSvc.InvalidateDashboard(ctx)
	s.publish(req.ID, "created")
	return req, nil
}

// generateCode 生成请求编号：REQ-<类型前3位>-<日期>-<当日序号>
func (s *RequestService) generateCode(ctx context.Context, rt entity.ResourceType, now time.Time) (string, error) {
	abbrev := string(rt)
	if len(abbrev) > 3 {
		abbrev = abbrev[:3]
	}
	prefix := fmt.Sprintf("REQ-%s-%s-", abbrev, now.Format("20060102"))
	count, err := s.requestRepo.CountByCodePrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// Get 获取请求详情
func (s *RequestService) Get(ctx context.Context, id string) (*entity.Request, error) {
	return s.requestRepo.FindByID(ctx, id)
}

// List 分页查询请求
func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]entity.Request, int64, error) {
	return s.requestRepo.List(ctx, filter)
}

// Acknowledge 受理请求：记录实际响应时间并流转到处理中
func (s *RequestService) Acknowledge(ctx context.Context, id, userID string) (*entity.Request, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: request %s is %s", ErrInvalidState, req.Code, req.Status)
	}
	if req.ActualResponseTime != nil {
		return nil, fmt.Errorf("%w: request %s already acknowledged", ErrInvalidState, req.Code)
	}

	now := time.Now()
	req.ActualResponseTime = &now
	req.AcknowledgedAt = &now
	req.AcknowledgedBy = &userID
	if req.Status == entity.StatusPending {
		req.Status = entity.StatusInProgress
	}
	req.UpdatedAt = now

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.reportSvc.InvalidateDashboard(ctx)
	s.publish(req.ID, "acknowledged")
	return req, nil
}

// CompleteRequestInput 完成请求入参
type CompleteRequestInput struct {
	ActualCost     *float64 `json:"actual_cost"`
	ReasonForDelay string   `json:"reason_for_delay"`
	Notes          string   `json:"notes"`
}

// Complete 完成请求：记录实际完成时间，超时必须填写延误原因
func (s *RequestService) Complete(ctx context.Context, id, userID string, in CompleteRequestInput) (*entity.Request, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: request %s is %s", ErrInvalidState, req.Code, req.Status)
	}

	now := time.Now()
	if req.SLACompletionDeadline != nil && now.After(*req.SLACompletionDeadline) && strings.TrimSpace(in.ReasonForDelay) == "" {
		return nil, fmt.Errorf("%w: reason for delay is required for late completion", ErrInvalidInput)
	}

	req.ActualCompletionTime = &now
	req.CompletedAt = &now
	req.Status = entity.StatusCompleted
	req.ActualCost = in.ActualCost
	req.ReasonForDelay = in.ReasonForDelay
	if in.Notes != "" {
		req.Notes = in.Notes
	}
	req.UpdatedAt = now

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.reportSvc.InvalidateDashboard(ctx)
	s.publish(req.ID, "completed")
	return req, nil
}

// Reject 拒绝请求
func (s *RequestService) Reject(ctx context.Context, id, userID, reason string) (*entity.Request, error) {
	return s.terminate(ctx, id, entity.StatusRejected, reason)
}

// Cancel 取消请求
func (s *RequestService) Cancel(ctx context.Context, id, userID, reason string) (*entity.Request, error) {
	return s.terminate(ctx, id, entity.StatusCancelled, reason)
}

func (s *RequestService) terminate(ctx context.Context, id string, status entity.RequestStatus, reason string) (*entity.Request, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: request %s is %s", ErrInvalidState, req.Code, req.Status)
	}

	now := time.Now()
	req.Status = status
	if reason != "" {
		req.Notes = reason
	}
	req.UpdatedAt = now

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.reportSvc.InvalidateDashboard(ctx)
	s.publish(req.ID, strings.ToLower(string(status)))
	return req, nil
}

// RateRequestInput 满意度评价入参
type RateRequestInput struct {
	TimelinessScore      *int   `json:"timeliness_score"`
	QualityScore         *int   `json:"quality_score"`
	CommunicationScore   *int   `json:"communication_score"`
	ProfessionalismScore *int   `json:"professionalism_score"`
	OverallScore         int    `json:"overall_score" binding:"required"`
	Comments             string `json:"comments"`
}

// Rate 提交满意度评价（只允许对已完成的请求评价）
func (s *RequestService) Rate(ctx context.Context, id, userID string, in RateRequestInput) (*entity.Request, error) {
	if in.OverallScore < 1 || in.OverallScore > 5 {
		return nil, fmt.Errorf("%w: overall score must be 1-5", ErrInvalidInput)
	}
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != entity.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed requests can be rated", ErrInvalidState)
	}

	now := time.Now()
	rating := &entity.CustomerSatisfaction{
		ID:                   uuid.New().String(),
		RequestID:            req.ID,
		TimelinessScore:      in.TimelinessScore,
		QualityScore:         in.QualityScore,
		CommunicationScore:   in.CommunicationScore,
		ProfessionalismScore: in.ProfessionalismScore,
		OverallScore:         in.OverallScore,
		Comments:             in.Comments,
		SubmittedBy:          userID,
		SubmittedAt:          now,
	}
	if err := s.satisfactionRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	req.SatisfactionRating = &in.OverallScore
	req.SatisfactionComment = in.Comments
	req.UpdatedAt = now
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.reportSvc.InvalidateDashboard(ctx)
	return req, nil
}

// SLAStatusView 请求的SLA状态视图
type SLAStatusView struct {
	Status         sla.Status           `json:"status"`
	ResponseStatus sla.ResponseState    `json:"response_status"`
	Compliance     sla.ComplianceReport `json:"compliance"`
	DelayTemplate  string               `json:"delay_reason_template"`
}

// SLAStatus 计算请求当前的SLA状态视图
func (s *RequestService) SLAStatus(ctx context.Context, id string) (*SLAStatusView, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &SLAStatusView{
		Status:         sla.Classify(req, now),
		ResponseStatus: sla.ClassifyResponse(req, now),
		Compliance:     sla.ComplianceOf(req),
		DelayTemplate:  sla.DelayReasonTemplate(req.ResourceType),
	}, nil
}
