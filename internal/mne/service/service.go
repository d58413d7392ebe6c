package service

import (
	"errors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/sse"
)

// 错误定义
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid request state for this operation")
	ErrDuplicatePolicy = errors.New("an active policy already exists for this scope")
)

// Services 服务集合
type Services struct {
	Auth    *AuthService
	Request *RequestService
	Policy  *PolicyService
	Detail  *DetailService
	Report  *ReportService
	Monitor *MonitorService
	Export  *ExportService
	Upload  *UploadService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
			minioClient = nil
		}
	}

	policySvc := NewPolicyService(repos.Policy)
	reportSvc := NewReportService(repos.Request, repos.Scorecard, repos.Org, repos.ResourceDetail, rdb, cfg)
	requestSvc := NewRequestService(repos.Request, repos.Policy, repos.Satisfaction, reportSvc, hub)
	monitorSvc := NewMonitorService(repos.Request, repos.Alert, hub, cfg, logger)

	return &Services{
		Auth:    NewAuthService(repos.Org, rdb, cfg),
		Request: requestSvc,
		Policy:  policySvc,
		Detail:  NewDetailService(repos.Request, repos.ResourceDetail),
		Report:  reportSvc,
		Monitor: monitorSvc,
		Export:  NewExportService(repos.Request),
		Upload:  NewUploadService(minioClient, cfg.MinIO.Bucket, cfg.MinIO.LocalDir),
	}
}
