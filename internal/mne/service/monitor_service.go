package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/sla"
	"github.com/tebita/resourcehub/internal/mne/sse"
)

// MonitorService SLA巡检服务：周期扫描活动请求并落告警
type MonitorService struct {
	requestRepo *repository.RequestRepository
	alertRepo   *repository.AlertRepository
	hub         *sse.Hub
	interval    time.Duration
	logger      *zap.Logger
}

// NewMonitorService 创建巡检服务
func NewMonitorService(requestRepo *repository.RequestRepository, alertRepo *repository.AlertRepository, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *MonitorService {
	interval := cfg.SLA.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &MonitorService{
		requestRepo: requestRepo,
		alertRepo:   alertRepo,
		hub:         hub,
		interval:    interval,
		logger:      logger,
	}
}

// Start 启动巡检循环，ctx取消后退出
func (s *MonitorService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("SLA monitor started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("SLA monitor stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("SLA sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep 扫描一轮活动请求。
// 告警按 (request_id, alert_type) 幂等，重复扫描不会重复落库或重复推送。
func (s *MonitorService) Sweep(ctx context.Context) error {
	requests, err := s.requestRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	var created int
	for _, req := range requests {
		alertType, ok := alertFor(req, now)
		if ok {
			if err := s.ensureAlert(ctx, req, alertType, now); err != nil {
				s.logger.Error("ensure alert failed",
					zap.String("request", req.Code),
					zap.String("alert_type", string(alertType)),
					zap.Error(err))
				continue
			}
			created++
		}
		// 响应超时单独告警，未受理的请求才有意义
		if sla.ClassifyResponse(req, now) == sla.ResponseOverdue {
			if err := s.ensureAlert(ctx, req, entity.AlertResponseOverdue, now); err != nil {
				s.logger.Error("ensure response alert failed",
					zap.String("request", req.Code),
					zap.Error(err))
			}
		}
	}

	s.logger.Debug("SLA sweep done",
		zap.Int("scanned", len(requests)),
		zap.Int("alertable", created))
	return nil
}

// alertFor 完成时限状态对应的告警类型
func alertFor(req *entity.Request, now time.Time) (entity.AlertType, bool) {
	switch sla.Classify(req, now) {
	case sla.StatusAtRisk50:
		return entity.Alert50Percent, true
	case sla.StatusAtRisk80:
		return entity.Alert80Percent, true
	case sla.StatusOverdue:
		return entity.AlertOverdue, true
	}
	return "", false
}

func (s *MonitorService) ensureAlert(ctx context.Context, req *entity.Request, alertType entity.AlertType, now time.Time) error {
	alert := &entity.SLAAlert{
		ID:        uuid.New().String(),
		RequestID: req.ID,
		AlertType: alertType,
		SentAt:    now,
	}
	isNew, err := s.alertRepo.CreateIfAbsent(ctx, alert)
	if err != nil {
		return err
	}
	if isNew && s.hub != nil {
		s.hub.PublishSLAAlert(req.ID, req.Code, string(alertType))
	}
	return nil
}

// ListAlerts 查询告警列表
func (s *MonitorService) ListAlerts(ctx context.Context, requestID string, unreadOnly bool) ([]entity.SLAAlert, error) {
	return s.alertRepo.List(ctx, requestID, unreadOnly)
}

// AcknowledgeAlert 确认告警
func (s *MonitorService) AcknowledgeAlert(ctx context.Context, id, userID string) error {
	return s.alertRepo.Acknowledge(ctx, id, userID)
}
