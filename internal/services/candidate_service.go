package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/logger"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/repositories"
	"talenthub_backend/internal/resume"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/internal/storage"
	"talenthub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const resumeURLExpiry = time.Hour

// ResumeFile is an uploaded resume already read into memory.
type ResumeFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

type CandidateService interface {
	Submit(ctx context.Context, db *gorm.DB, userID string, req *dto.SubmitCandidateRequest, file *ResumeFile) (*models.Candidate, error)
	GetByID(db *gorm.DB, id string) (*models.Candidate, error)
	List(db *gorm.DB, req *dto.CandidateListRequest) (*dto.CandidateListResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateCandidateRequest) (*models.Candidate, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
	Stats(db *gorm.DB) (*repositories.CandidateStats, error)
	ResumeDownloadURL(ctx context.Context, db *gorm.DB, id string) (string, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	aiClient      ai.Client
	store         storage.Storage
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	aiClient ai.Client,
	store storage.Storage,
) CandidateService {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		aiClient:      aiClient,
		store:         store,
	}
}

// Submit runs the application pipeline: resolve the job, extract and parse
// the resume, score it against the job, persist the file, then bump the
// job's applicant counter and insert the candidate in one transaction.
//
// A failed parse aborts the submission with nothing written. A failed
// match only costs the score: the candidate is stored with score 0.
func (s *CandidateServiceImpl) Submit(ctx context.Context, db *gorm.DB, userID string, req *dto.SubmitCandidateRequest, file *ResumeFile) (*models.Candidate, error) {
	job, err := s.jobRepo.FindByID(db, req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("candidates", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}

	candidate := &models.Candidate{
		JobID:  job.ID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
		Status: models.CandidateStatusApplied,
	}
	if userID != "" {
		candidate.UserID = &userID
	}

	if file != nil {
		if err := s.processResume(ctx, job, candidate, file); err != nil {
			return nil, err
		}
	}

	if err := s.candidateRepo.CreateWithCounter(db, candidate); err != nil {
		if file != nil && candidate.ResumePath != "" {
			if delErr := s.store.Delete(ctx, candidate.ResumePath); delErr != nil {
				logger.CtxWarn(ctx, "failed to clean up resume after aborted submission",
					"path", candidate.ResumePath, "error", delErr)
			}
		}
		return nil, apperrors.InternalError(err)
	}

	candidate.Job = job
	return candidate, nil
}

func (s *CandidateServiceImpl) processResume(ctx context.Context, job *models.Job, candidate *models.Candidate, file *ResumeFile) error {
	text, err := resume.ExtractText(file.Data, file.Filename)
	if err != nil {
		return apperrors.NewBadRequestError("Could not read resume file: " + err.Error())
	}
	text = resume.Truncate(text)

	parsed, err := s.aiClient.ParseResume(ctx, text)
	if err != nil {
		return apperrors.UpstreamError("openai", err)
	}
	candidate.ParsedResume = datatypes.NewJSONType(*parsed)

	match, err := s.aiClient.MatchResume(ctx, job, parsed)
	if err != nil {
		logger.CtxWarn(ctx, "match scoring failed, storing candidate unscored",
			"job_id", job.ID, "error", err)
	} else {
		candidate.MatchScore = match.Score
		candidate.MatchSummary = match.Summary
	}

	key := fmt.Sprintf("resumes/%d-%s%s",
		time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.store.Save(ctx, key, bytes.NewReader(file.Data), file.ContentType); err != nil {
		return apperrors.UpstreamError("storage", err)
	}
	candidate.ResumePath = key

	url, err := s.store.GetURL(ctx, key)
	if err == nil {
		candidate.ResumeURL = url
	}
	return nil
}

func (s *CandidateServiceImpl) GetByID(db *gorm.DB, id string) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.NewNotFoundError("candidates", "Candidate not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return candidate, nil
}

func (s *CandidateServiceImpl) List(db *gorm.DB, req *dto.CandidateListRequest) (*dto.CandidateListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	candidates, total, err := s.candidateRepo.FindWithFilter(db, repositories.CandidateFilter{
		JobID:    req.JobID,
		Status:   models.CandidateStatus(req.Status),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CandidateListResponse{
		Candidates: candidates,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *CandidateServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateCandidateRequest) (*models.Candidate, error) {
	candidate, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		candidate.Name = req.Name
	}
	if req.Email != "" {
		candidate.Email = req.Email
	}
	if req.Phone != "" {
		candidate.Phone = req.Phone
	}
	if req.Status != "" {
		if !models.ValidCandidateStatus(models.CandidateStatus(req.Status)) {
			return nil, apperrors.New(apperrors.CodeInvalidStatus, "candidates",
				"Invalid candidate status: "+req.Status, 400)
		}
		candidate.Status = models.CandidateStatus(req.Status)
	}
	if req.Notes != "" {
		candidate.Notes = req.Notes
	}

	if err := s.candidateRepo.Update(db, candidate); err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.NewNotFoundError("candidates", "Candidate not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return candidate, nil
}

// Delete removes the candidate row and then the stored resume. A failed
// file removal is logged, not surfaced: the record is already gone.
func (s *CandidateServiceImpl) Delete(ctx context.Context, db *gorm.DB, id string) error {
	candidate, err := s.GetByID(db, id)
	if err != nil {
		return err
	}

	if err := s.candidateRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return apperrors.NewNotFoundError("candidates", "Candidate not found")
		}
		return apperrors.InternalError(err)
	}

	if candidate.ResumePath != "" {
		if err := s.store.Delete(ctx, candidate.ResumePath); err != nil {
			logger.CtxWarn(ctx, "failed to delete resume file",
				"candidate_id", id, "path", candidate.ResumePath, "error", err)
		}
	}
	return nil
}

func (s *CandidateServiceImpl) Stats(db *gorm.DB) (*repositories.CandidateStats, error) {
	stats, err := s.candidateRepo.GetStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *CandidateServiceImpl) ResumeDownloadURL(ctx context.Context, db *gorm.DB, id string) (string, error) {
	candidate, err := s.GetByID(db, id)
	if err != nil {
		return "", err
	}
	if candidate.ResumePath == "" {
		return "", apperrors.NewNotFoundError("candidates", "No resume on file")
	}

	url, err := s.store.GetSignedURL(ctx, candidate.ResumePath, resumeURLExpiry)
	if err != nil {
		return "", apperrors.UpstreamError("storage", err)
	}
	return url, nil
}
