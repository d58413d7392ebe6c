package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/service"
)

// UploadHandler 附件上传处理器
type UploadHandler struct {
	svc *service.UploadService
}

// NewUploadHandler 创建附件上传处理器
func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload 上传附件
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open file failed: "+err.Error())
		return
	}
	defer f.Close()

	objectName, err := h.svc.Upload(c.Request.Context(), f, fileHeader.Filename, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		InternalError(c, "upload failed: "+err.Error())
		return
	}

	Created(c, gin.H{
		"object_name": objectName,
		"file_name":   fileHeader.Filename,
		"size":        fileHeader.Size,
	})
}

// Download 下载附件
// GET /api/v1/uploads/*object
func (h *UploadHandler) Download(c *gin.Context) {
	objectName := c.Param("object")
	if len(objectName) > 0 && objectName[0] == '/' {
		objectName = objectName[1:]
	}
	if objectName == "" {
		BadRequest(c, "object name is required")
		return
	}

	reader, err := h.svc.Download(c.Request.Context(), objectName)
	if err != nil {
		NotFound(c, "attachment not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment")
	c.DataFromReader(200, -1, "application/octet-stream", reader, nil)
}
