package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"talenthub_backend/internal/middleware"
	"talenthub_backend/internal/services"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Legacy .doc is accepted for parity with the intake form but has no
// dedicated extractor; see resume.ExtractText.
var allowedResumeExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	maxResumeSize    int64
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, maxResumeSize int64) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		maxResumeSize:    maxResumeSize,
	}
}

// RegisterRoutes exposes submission and the tracking reads to any
// signed-in user.
func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	candidates := rg.Group("/candidates")
	{
		candidates.POST("", h.Submit)
		candidates.GET("", h.List)
		candidates.GET("/stats", h.Stats)
		candidates.GET("/:id", h.GetByID)
		candidates.GET("/:id/resume", h.ResumeURL)
	}
}

// RegisterStaffRoutes exposes status changes and deletion, gated to
// admin/hr by the caller.
func (h *CandidateHandler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	candidates := rg.Group("/candidates")
	{
		candidates.PUT("/:id", h.Update)
		candidates.DELETE("/:id", h.Delete)
	}
}

// Submit accepts multipart form fields plus an optional resume file.
func (h *CandidateHandler) Submit(c *gin.Context) {
	var req dto.SubmitCandidateRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	file, err := h.readResumeFile(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	candidate, err := h.candidateService.Submit(
		c.Request.Context(), h.GetDB(c), middleware.GetUserID(c), &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// readResumeFile pulls the optional "resume" part and enforces the type
// and size gates before anything touches the pipeline.
func (h *CandidateHandler) readResumeFile(c *gin.Context) (*services.ResumeFile, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Invalid resume upload: " + err.Error())
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedResumeExts[ext] {
		return nil, apperrors.NewBadRequestError("Only .pdf, .doc and .docx resumes are accepted")
	}
	if fileHeader.Size > h.maxResumeSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("Resume exceeds the %d MB limit", h.maxResumeSize/(1<<20)))
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &services.ResumeFile{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
	}, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func (h *CandidateHandler) GetByID(c *gin.Context) {
	candidate, err := h.candidateService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) List(c *gin.Context) {
	var req dto.CandidateListRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.candidateService.List(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CandidateHandler) Update(c *gin.Context) {
	var req dto.UpdateCandidateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted"})
}

func (h *CandidateHandler) ResumeURL(c *gin.Context) {
	url, err := h.candidateService.ResumeDownloadURL(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *CandidateHandler) Stats(c *gin.Context) {
	stats, err := h.candidateService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
