package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
)

// DetailService 资源明细服务。
// 每个请求至多一条对应资源类型的明细，重复提交按更新处理。
type DetailService struct {
	requestRepo *repository.RequestRepository
	detailRepo  *repository.ResourceDetailRepository
}

// NewDetailService 创建资源明细服务
func NewDetailService(requestRepo *repository.RequestRepository, detailRepo *repository.ResourceDetailRepository) *DetailService {
	return &DetailService{requestRepo: requestRepo, detailRepo: detailRepo}
}

func (s *DetailService) checkRequest(ctx context.Context, requestID string, rt entity.ResourceType) error {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ResourceType != rt {
		return fmt.Errorf("%w: request %s is %s, not %s", ErrInvalidInput, req.Code, req.ResourceType, rt)
	}
	return nil
}

// UpsertFleet 写入或更新车队明细
func (s *DetailService) UpsertFleet(ctx context.Context, requestID string, in entity.FleetDetail) (*entity.FleetDetail, error) {
	if err := s.checkRequest(ctx, requestID, entity.ResourceFleet); err != nil {
		return nil, err
	}
	existing, err := s.detailRepo.FindFleetByRequest(ctx, requestID)
	switch {
	case err == nil:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		in.ID = uuid.New().String()
		in.CreatedAt = time.Now()
	default:
		return nil, err
	}
	in.RequestID = requestID
	if err := s.detailRepo.SaveFleet(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetFleet 查询车队明细
func (s *DetailService) GetFleet(ctx context.Context, requestID string) (*entity.FleetDetail, error) {
	return s.detailRepo.FindFleetByRequest(ctx, requestID)
}

// UpsertHR 写入或更新人力派遣明细
func (s *DetailService) UpsertHR(ctx context.Context, requestID string, in entity.HRDeployment) (*entity.HRDeployment, error) {
	if err := s.checkRequest(ctx, requestID, entity.ResourceHR); err != nil {
		return nil, err
	}
	existing, err := s.detailRepo.FindHRByRequest(ctx, requestID)
	switch {
	case err == nil:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		in.ID = uuid.New().String()
		in.CreatedAt = time.Now()
	default:
		return nil, err
	}
	in.RequestID = requestID
	if err := s.detailRepo.SaveHR(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetHR 查询人力派遣明细
func (s *DetailService) GetHR(ctx context.Context, requestID string) (*entity.HRDeployment, error) {
	return s.detailRepo.FindHRByRequest(ctx, requestID)
}

// UpsertFinance 写入或更新财务处理明细
func (s *DetailService) UpsertFinance(ctx context.Context, requestID string, in entity.FinanceTransaction) (*entity.FinanceTransaction, error) {
	if err := s.checkRequest(ctx, requestID, entity.ResourceFinance); err != nil {
		return nil, err
	}
	existing, err := s.detailRepo.FindFinanceByRequest(ctx, requestID)
	switch {
	case err == nil:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		in.ID = uuid.New().String()
		in.CreatedAt = time.Now()
	default:
		return nil, err
	}
	in.RequestID = requestID
	if err := s.detailRepo.SaveFinance(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetFinance 查询财务处理明细
func (s *DetailService) GetFinance(ctx context.Context, requestID string) (*entity.FinanceTransaction, error) {
	return s.detailRepo.FindFinanceByRequest(ctx, requestID)
}

// UpsertICT 写入或更新ICT工单明细
func (s *DetailService) UpsertICT(ctx context.Context, requestID string, in entity.ICTTicket) (*entity.ICTTicket, error) {
	if err := s.checkRequest(ctx, requestID, entity.ResourceICT); err != nil {
		return nil, err
	}
	existing, err := s.detailRepo.FindICTByRequest(ctx, requestID)
	switch {
	case err == nil:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		in.ID = uuid.New().String()
		in.CreatedAt = time.Now()
	default:
		return nil, err
	}
	in.RequestID = requestID
	if err := s.detailRepo.SaveICT(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetICT 查询ICT工单明细
func (s *DetailService) GetICT(ctx context.Context, requestID string) (*entity.ICTTicket, error) {
	return s.detailRepo.FindICTByRequest(ctx, requestID)
}

// UpsertLogistics 写入或更新物流明细
func (s *DetailService) UpsertLogistics(ctx context.Context, requestID string, in entity.LogisticsDetail) (*entity.LogisticsDetail, error) {
	if err := s.checkRequest(ctx, requestID, entity.ResourceLogistics); err != nil {
		return nil, err
	}
	existing, err := s.detailRepo.FindLogisticsByRequest(ctx, requestID)
	switch {
	case err == nil:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		in.ID = uuid.New().String()
		in.CreatedAt = time.Now()
	default:
		return nil, err
	}
	in.RequestID = requestID
	if err := s.detailRepo.SaveLogistics(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GetLogistics 查询物流明细
func (s *DetailService) GetLogistics(ctx context.Context, requestID string) (*entity.LogisticsDetail, error) {
	return s.detailRepo.FindLogisticsByRequest(ctx, requestID)
}
