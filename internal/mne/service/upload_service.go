package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadService 附件存储服务，MinIO不可用时回落到本地目录
type UploadService struct {
	minioClient *minio.Client
	bucketName  string
	localDir    string
}

// NewUploadService 创建附件存储服务
func NewUploadService(minioClient *minio.Client, bucketName, localDir string) *UploadService {
	if localDir == "" {
		localDir = "./uploads"
	}
	return &UploadService{
		minioClient: minioClient,
		bucketName:  bucketName,
		localDir:    localDir,
	}
}

// Upload 保存附件，返回对象键
func (s *UploadService) Upload(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("attachments/%s/%s%s", time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return "", fmt.Errorf("upload file: %w", err)
		}
		return objectName, nil
	}

	// 本地回落
	path := filepath.Join(s.localDir, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return objectName, nil
}

// Download 读取附件
func (s *UploadService) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.minioClient != nil {
		object, err := s.minioClient.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("get object: %w", err)
		}
		return object, nil
	}

	f, err := os.Open(filepath.Join(s.localDir, objectName))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
