package models

import "gorm.io/datatypes"

// SalaryRange is stored as a JSON column.
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type Job struct {
	BaseModel
	Title      string  `gorm:"not null" json:"title"`
	Department string  `json:"department,omitempty"`
	Location   string  `json:"location,omitempty"`
	Type       JobType `gorm:"type:varchar(20);default:'full-time'" json:"type"`

	// Raw prompt from HR; the AI expands it into a full description
	RawRequirements string                         `json:"rawRequirements,omitempty"`
	Description     string                         `json:"description,omitempty"`
	Skills          datatypes.JSONSlice[string]    `json:"skills"`
	Experience      string                         `json:"experience,omitempty"`
	Salary          datatypes.JSONType[SalaryRange] `json:"salary"`

	Status JobStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// No DB constraint: removing a user must not invalidate their postings
	CreatedByID string `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID;constraint:-" json:"creator,omitempty"`

	ApplicantsCount int `gorm:"default:0" json:"applicantsCount"`
}
