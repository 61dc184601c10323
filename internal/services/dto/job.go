package dto

import (
	"talenthub_backend/internal/models"
)

type CreateJobRequest struct {
	Title           string              `json:"title" validate:"required,min=2,max=200"`
	Department      string              `json:"department" validate:"omitempty,max=100"`
	Location        string              `json:"location" validate:"omitempty,max=200"`
	Type            string              `json:"type" validate:"omitempty,oneof=full-time part-time contract remote"`
	RawRequirements string              `json:"rawRequirements"`
	Experience      string              `json:"experience" validate:"omitempty,max=100"`
	Salary          *models.SalaryRange `json:"salary"`
	Status          string              `json:"status" validate:"omitempty,oneof=draft active closed"`
}

type UpdateJobRequest struct {
	Title           string              `json:"title" validate:"omitempty,min=2,max=200"`
	Department      string              `json:"department" validate:"omitempty,max=100"`
	Location        string              `json:"location" validate:"omitempty,max=200"`
	Type            string              `json:"type" validate:"omitempty,oneof=full-time part-time contract remote"`
	RawRequirements *string             `json:"rawRequirements"`
	Description     *string             `json:"description"`
	Skills          []string            `json:"skills"`
	Experience      *string             `json:"experience"`
	Salary          *models.SalaryRange `json:"salary"`
	Status          string              `json:"status" validate:"omitempty,oneof=draft active closed"`
}

type JobListRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=draft active closed"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type JobListResponse struct {
	Jobs     []models.Job `json:"jobs"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}
