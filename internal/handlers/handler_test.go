package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talenthub_backend/internal/models"
	"talenthub_backend/internal/repositories"
	"talenthub_backend/internal/services"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/internal/validator"
	"talenthub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
	})
	return r
}

func newBase() *BaseHandler {
	return NewBaseHandler(validator.New())
}

// --- auth ---

type stubAuthService struct {
	registerResp *dto.AuthResponse
	registerErr  error
	called       bool
}

func (s *stubAuthService) Register(_ *gorm.DB, _ *dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.called = true
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(_ *gorm.DB, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) GetProfile(_ *gorm.DB, _ string) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuthService) UpdateProfile(_ *gorm.DB, _ string, _ *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func TestRegisterEndpoint(t *testing.T) {
	stub := &stubAuthService{registerResp: &dto.AuthResponse{
		Token: "tok",
		User:  dto.UserResponse{ID: "u1", Role: "candidate"},
	}}

	r := newTestRouter()
	NewAuthHandler(newBase(), stub).RegisterRoutes(r.Group("/api"))

	body := `{"name":"Jane","email":"jane@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, stub.called)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
}

func TestRegisterValidationFailure(t *testing.T) {
	stub := &stubAuthService{}

	r := newTestRouter()
	NewAuthHandler(newBase(), stub).RegisterRoutes(r.Group("/api"))

	body := `{"name":"Jane","email":"not-an-email","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, stub.called)
	assert.Contains(t, w.Body.String(), "email")
}

// --- candidates ---

type stubCandidateService struct {
	submitted *services.ResumeFile
	request   *dto.SubmitCandidateRequest
	called    bool
}

func (s *stubCandidateService) Submit(_ context.Context, _ *gorm.DB, _ string, req *dto.SubmitCandidateRequest, file *services.ResumeFile) (*models.Candidate, error) {
	s.called = true
	s.submitted = file
	s.request = req
	return &models.Candidate{JobID: req.JobID, Name: req.Name, Email: req.Email}, nil
}

func (s *stubCandidateService) GetByID(_ *gorm.DB, _ string) (*models.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateService) List(_ *gorm.DB, _ *dto.CandidateListRequest) (*dto.CandidateListResponse, error) {
	return &dto.CandidateListResponse{}, nil
}

func (s *stubCandidateService) Update(_ *gorm.DB, _ string, _ *dto.UpdateCandidateRequest) (*models.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateService) Delete(_ context.Context, _ *gorm.DB, _ string) error {
	return nil
}

func (s *stubCandidateService) Stats(_ *gorm.DB) (*repositories.CandidateStats, error) {
	return nil, nil
}

func (s *stubCandidateService) ResumeDownloadURL(_ context.Context, _ *gorm.DB, _ string) (string, error) {
	return "", nil
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(fileData))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func candidateFields() map[string]string {
	return map[string]string{
		"jobId": "job-1",
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"notes": "Met at the career fair",
	}
}

func TestSubmitCandidateWithoutFile(t *testing.T) {
	stub := &stubCandidateService{}

	r := newTestRouter()
	NewCandidateHandler(newBase(), stub, 5<<20).RegisterRoutes(r.Group("/api"))

	buf, contentType := multipartBody(t, candidateFields(), "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, stub.called)
	assert.Nil(t, stub.submitted)
	require.NotNil(t, stub.request)
	assert.Equal(t, "Met at the career fair", stub.request.Notes)
}

func TestSubmitCandidateWithResume(t *testing.T) {
	stub := &stubCandidateService{}

	r := newTestRouter()
	NewCandidateHandler(newBase(), stub, 5<<20).RegisterRoutes(r.Group("/api"))

	buf, contentType := multipartBody(t, candidateFields(), "resume", "cv.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stub.submitted)
	assert.Equal(t, "cv.pdf", stub.submitted.Filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), stub.submitted.Data)
}

func TestSubmitCandidateRejectsBadExtension(t *testing.T) {
	stub := &stubCandidateService{}

	r := newTestRouter()
	NewCandidateHandler(newBase(), stub, 5<<20).RegisterRoutes(r.Group("/api"))

	buf, contentType := multipartBody(t, candidateFields(), "resume", "cv.exe", []byte("MZ"))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, stub.called)
}

func TestSubmitCandidateRejectsOversizedResume(t *testing.T) {
	stub := &stubCandidateService{}

	r := newTestRouter()
	NewCandidateHandler(newBase(), stub, 10).RegisterRoutes(r.Group("/api"))

	buf, contentType := multipartBody(t, candidateFields(), "resume", "cv.pdf", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, stub.called)
}

func TestSubmitCandidateMissingFields(t *testing.T) {
	stub := &stubCandidateService{}

	r := newTestRouter()
	NewCandidateHandler(newBase(), stub, 5<<20).RegisterRoutes(r.Group("/api"))

	buf, contentType := multipartBody(t, map[string]string{"name": "Jane"}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, stub.called)
}
