package repositories

import (
	"errors"
	"time"

	"talenthub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	Status   models.JobStatus
	Search   string // case-insensitive substring match on title
	Page     int
	PageSize int
}

type MonthlyJobCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type JobStats struct {
	Total   int64             `json:"total"`
	Active  int64             `json:"active"`
	Draft   int64             `json:"draft"`
	Closed  int64             `json:"closed"`
	Monthly []MonthlyJobCount `json:"monthly"`
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, id string) error
	GetStats(db *gorm.DB) (*JobStats, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("CreatedBy").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job
	query := db.Model(&models.Job{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize

	err := query.Preload("CreatedBy").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error

	return jobs, total, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":            job.Title,
		"department":       job.Department,
		"location":         job.Location,
		"type":             job.Type,
		"raw_requirements": job.RawRequirements,
		"description":      job.Description,
		"skills":           job.Skills,
		"experience":       job.Experience,
		"salary":           job.Salary,
		"status":           job.Status,
		"updated_at":       time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	// No cascade: candidate rows keep their job reference
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) GetStats(db *gorm.DB) (*JobStats, error) {
	var stats JobStats

	if err := db.Model(&models.Job{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status models.JobStatus
		dest   *int64
	}{
		{models.JobStatusActive, &stats.Active},
		{models.JobStatusDraft, &stats.Draft},
		{models.JobStatusClosed, &stats.Closed},
	}
	for _, c := range counts {
		if err := db.Model(&models.Job{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// Trailing 6-month creation histogram grouped by (year, month)
	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	err := db.Model(&models.Job{}).
		Select("EXTRACT(YEAR FROM created_at)::int AS year, EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("created_at >= ?", sixMonthsAgo).
		Group("1, 2").
		Order("1, 2").
		Scan(&stats.Monthly).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
