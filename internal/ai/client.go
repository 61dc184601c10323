package ai

import (
	"context"

	"talenthub_backend/internal/models"
)

// JobDescription is the generated posting content for a job.
type JobDescription struct {
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// MatchResult scores a parsed resume against a job, 0-100.
type MatchResult struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// Client is the LLM surface the services depend on.
type Client interface {
	GenerateJobDescription(ctx context.Context, title, rawRequirements string) (*JobDescription, error)
	ParseResume(ctx context.Context, resumeText string) (*models.ParsedResume, error)
	MatchResume(ctx context.Context, job *models.Job, parsed *models.ParsedResume) (*MatchResult, error)
}
