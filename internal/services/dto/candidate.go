package dto

import (
	"talenthub_backend/internal/models"
)

// SubmitCandidateRequest arrives as multipart form fields next to the
// optional resume file.
type SubmitCandidateRequest struct {
	JobID string `form:"jobId" validate:"required"`
	Name  string `form:"name" validate:"required,min=2,max=100"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"omitempty,max=30"`
	Notes string `form:"notes" validate:"omitempty,max=2000"`
}

type UpdateCandidateRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=100"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"omitempty,max=30"`
	Status string `json:"status" validate:"omitempty,oneof=applied screening interview offer rejected hired"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

type CandidateListRequest struct {
	JobID    string `form:"jobId"`
	Status   string `form:"status" validate:"omitempty,oneof=applied screening interview offer rejected hired"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type CandidateListResponse struct {
	Candidates []models.Candidate `json:"candidates"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}
