package repositories

import (
	"errors"
	"math"

	"talenthub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateFilter struct {
	JobID    string
	Status   models.CandidateStatus
	Page     int
	PageSize int
}

type CandidateStats struct {
	Total         int64            `json:"total"`
	AvgMatchScore float64          `json:"avgMatchScore"`
	ByStatus      map[string]int64 `json:"byStatus"`
}

type CandidateRepository interface {
	CreateWithCounter(db *gorm.DB, candidate *models.Candidate) error
	FindByID(db *gorm.DB, id string) (*models.Candidate, error)
	FindWithFilter(db *gorm.DB, filter CandidateFilter) ([]models.Candidate, int64, error)
	Update(db *gorm.DB, candidate *models.Candidate) error
	Delete(db *gorm.DB, id string) error
	GetStats(db *gorm.DB) (*CandidateStats, error)
}

type CandidateRepositoryImpl struct{}

func NewCandidateRepository() CandidateRepository {
	return &CandidateRepositoryImpl{}
}

// CreateWithCounter inserts the candidate and bumps the job's applicant
// counter in one transaction.
func (r *CandidateRepositoryImpl) CreateWithCounter(db *gorm.DB, candidate *models.Candidate) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).Where("id = ?", candidate.JobID).
			UpdateColumn("applicants_count", gorm.Expr("applicants_count + 1")).Error
		if err != nil {
			return err
		}
		return tx.Create(candidate).Error
	})
}

func (r *CandidateRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.Preload("Job").First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) FindWithFilter(db *gorm.DB, filter CandidateFilter) ([]models.Candidate, int64, error) {
	var candidates []models.Candidate
	query := db.Model(&models.Candidate{})

	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize

	// Best match first; id tiebreak keeps the order deterministic
	err := query.Preload("Job").
		Order("match_score DESC, id ASC").Limit(limit).Offset(offset).Find(&candidates).Error

	return candidates, total, err
}

func (r *CandidateRepositoryImpl) Update(db *gorm.DB, candidate *models.Candidate) error {
	result := db.Model(&models.Candidate{}).Where("id = ?", candidate.ID).Updates(map[string]interface{}{
		"name":   candidate.Name,
		"email":  candidate.Email,
		"phone":  candidate.Phone,
		"status": candidate.Status,
		"notes":  candidate.Notes,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Candidate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) GetStats(db *gorm.DB) (*CandidateStats, error) {
	stats := &CandidateStats{ByStatus: make(map[string]int64)}

	if err := db.Model(&models.Candidate{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		var avg float64
		err := db.Model(&models.Candidate{}).
			Select("COALESCE(AVG(match_score), 0)").Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		stats.AvgMatchScore = math.Round(avg*10) / 10
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := db.Model(&models.Candidate{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	return stats, nil
}
