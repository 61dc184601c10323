package models

import "gorm.io/datatypes"

// ParsedResume is the structured output of the AI resume parse.
type ParsedResume struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
}

type Candidate struct {
	BaseModel
	// Optional link to a User account; HR can add external candidates
	UserID *string `gorm:"type:uuid" json:"userId,omitempty"`

	// Job reference carries no DB constraint: deleting a Job must leave
	// its candidates in place with a dangling reference.
	JobID string `gorm:"type:uuid;not null;index" json:"jobId"`
	Job   *Job   `gorm:"foreignKey:JobID;constraint:-" json:"job,omitempty"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null" json:"email"`
	Phone string `json:"phone,omitempty"`

	ResumePath string `json:"resumePath,omitempty"`
	ResumeURL  string `json:"resumeUrl,omitempty"`

	ParsedResume datatypes.JSONType[ParsedResume] `json:"parsedResume"`

	// AI match score against the job, 0-100
	MatchScore   float64 `gorm:"default:0;index" json:"matchScore"`
	MatchSummary string  `json:"matchSummary,omitempty"`

	Status CandidateStatus `gorm:"type:varchar(20);default:'applied'" json:"status"`
	Notes  string          `json:"notes,omitempty"`
}
