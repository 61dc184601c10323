package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"talenthub_backend/internal/services"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CloudHandler struct {
	*BaseHandler
	cloudService  services.CloudService
	maxUploadSize int64
}

func NewCloudHandler(base *BaseHandler, cloudService services.CloudService, maxUploadSize int64) *CloudHandler {
	return &CloudHandler{
		BaseHandler:   base,
		cloudService:  cloudService,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes wires the cloud proxy, gated to admin by the caller.
func (h *CloudHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ec2 := rg.Group("/cloud/ec2")
	{
		ec2.GET("/instances", h.ListInstances)
		ec2.POST("/:instanceId/start", h.StartInstance)
		ec2.POST("/:instanceId/stop", h.StopInstance)
	}

	s3 := rg.Group("/cloud/s3")
	{
		s3.GET("/buckets", h.ListBuckets)
		s3.GET("/objects", h.ListObjects)
		s3.POST("/upload", h.UploadObject)
		s3.DELETE("/object", h.DeleteObject)
		// wildcard so keys with slashes resolve without URL-encoding
		s3.GET("/signed/*key", h.SignedURL)
	}
}

func (h *CloudHandler) ListInstances(c *gin.Context) {
	instances, err := h.cloudService.ListInstances(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(instances), "instances": instances})
}

func (h *CloudHandler) StartInstance(c *gin.Context) {
	resp, err := h.cloudService.StartInstance(c.Request.Context(), c.Param("instanceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CloudHandler) StopInstance(c *gin.Context) {
	resp, err := h.cloudService.StopInstance(c.Request.Context(), c.Param("instanceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CloudHandler) ListBuckets(c *gin.Context) {
	buckets, err := h.cloudService.ListBuckets(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

func (h *CloudHandler) ListObjects(c *gin.Context) {
	objects, err := h.cloudService.ListObjects(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"objects": objects})
}

func (h *CloudHandler) UploadObject(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("File is required: "+err.Error()))
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		h.HandleServiceError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the %d MB limit", h.maxUploadSize/(1<<20))))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.cloudService.UploadObject(
		c.Request.Context(), fileHeader.Filename, src, contentType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CloudHandler) DeleteObject(c *gin.Context) {
	var req dto.DeleteObjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.cloudService.DeleteObject(c.Request.Context(), req.Key); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted: " + req.Key})
}

func (h *CloudHandler) SignedURL(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	resp, err := h.cloudService.SignedDownloadURL(c.Request.Context(), key)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
