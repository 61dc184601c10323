package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/cloud"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The db handle is ignored, it only exists to
// satisfy the interfaces.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(_ *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*models.Job{}}
}

func (r *fakeJobRepo) Create(_ *gorm.DB, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) FindByID(_ *gorm.DB, id string) (*models.Job, error) {
	if j, ok := r.jobs[id]; ok {
		return j, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) FindWithFilter(_ *gorm.DB, filter repositories.JobFilter) ([]models.Job, int64, error) {
	matched := []models.Job{}
	for _, j := range r.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *j)
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeJobRepo) Update(_ *gorm.DB, job *models.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) Delete(_ *gorm.DB, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) GetStats(_ *gorm.DB) (*repositories.JobStats, error) {
	stats := &repositories.JobStats{}
	for _, j := range r.jobs {
		stats.Total++
		switch j.Status {
		case models.JobStatusActive:
			stats.Active++
		case models.JobStatusDraft:
			stats.Draft++
		case models.JobStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

type fakeCandidateRepo struct {
	candidates map[string]*models.Candidate
	jobs       *fakeJobRepo
}

func newFakeCandidateRepo(jobs *fakeJobRepo) *fakeCandidateRepo {
	return &fakeCandidateRepo{
		candidates: map[string]*models.Candidate{},
		jobs:       jobs,
	}
}

func (r *fakeCandidateRepo) CreateWithCounter(_ *gorm.DB, candidate *models.Candidate) error {
	job, ok := r.jobs.jobs[candidate.JobID]
	if !ok {
		return errors.New("job vanished")
	}
	job.ApplicantsCount++

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) FindByID(_ *gorm.DB, id string) (*models.Candidate, error) {
	if c, ok := r.candidates[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrCandidateNotFound
}

func (r *fakeCandidateRepo) FindWithFilter(_ *gorm.DB, filter repositories.CandidateFilter) ([]models.Candidate, int64, error) {
	matched := []models.Candidate{}
	for _, c := range r.candidates {
		if filter.JobID != "" && c.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].MatchScore > matched[b].MatchScore
	})
	return matched, int64(len(matched)), nil
}

func (r *fakeCandidateRepo) Update(_ *gorm.DB, candidate *models.Candidate) error {
	if _, ok := r.candidates[candidate.ID]; !ok {
		return repositories.ErrCandidateNotFound
	}
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) Delete(_ *gorm.DB, id string) error {
	if _, ok := r.candidates[id]; !ok {
		return repositories.ErrCandidateNotFound
	}
	delete(r.candidates, id)
	return nil
}

func (r *fakeCandidateRepo) GetStats(_ *gorm.DB) (*repositories.CandidateStats, error) {
	stats := &repositories.CandidateStats{ByStatus: map[string]int64{}}
	var sum float64
	for _, c := range r.candidates {
		stats.Total++
		stats.ByStatus[string(c.Status)]++
		sum += c.MatchScore
	}
	if stats.Total > 0 {
		stats.AvgMatchScore = sum / float64(stats.Total)
	}
	return stats, nil
}

// fakeAI lets each test script the LLM.

type fakeAI struct {
	genFunc   func(title, raw string) (*ai.JobDescription, error)
	parseFunc func(text string) (*models.ParsedResume, error)
	matchFunc func(job *models.Job, parsed *models.ParsedResume) (*ai.MatchResult, error)
	genCalls  int
}

func (f *fakeAI) GenerateJobDescription(_ context.Context, title, raw string) (*ai.JobDescription, error) {
	f.genCalls++
	if f.genFunc != nil {
		return f.genFunc(title, raw)
	}
	return &ai.JobDescription{Description: "generated for " + title, Skills: []string{"Go"}}, nil
}

func (f *fakeAI) ParseResume(_ context.Context, text string) (*models.ParsedResume, error) {
	if f.parseFunc != nil {
		return f.parseFunc(text)
	}
	return &models.ParsedResume{Skills: []string{"Go"}, Summary: "summary"}, nil
}

func (f *fakeAI) MatchResume(_ context.Context, job *models.Job, parsed *models.ParsedResume) (*ai.MatchResult, error) {
	if f.matchFunc != nil {
		return f.matchFunc(job, parsed)
	}
	return &ai.MatchResult{Score: 80, Summary: "solid match"}, nil
}

// fakeStorage records saves and deletes in memory.

type fakeStorage struct {
	saved   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (s *fakeStorage) Save(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.saved[key] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.saved[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(_ context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

func (s *fakeStorage) GetSignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

// Cloud fakes.

type fakeCompute struct {
	instances []cloud.Instance
	started   []string
	stopped   []string
	err       error
}

func (f *fakeCompute) ListInstances(_ context.Context) ([]cloud.Instance, error) {
	return f.instances, f.err
}

func (f *fakeCompute) StartInstance(_ context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.started = append(f.started, id)
	return "pending", nil
}

func (f *fakeCompute) StopInstance(_ context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.stopped = append(f.stopped, id)
	return "stopping", nil
}

type fakeObjects struct {
	buckets  []cloud.Bucket
	objects  map[string][]cloud.Object
	uploaded map[string][]byte
	deleted  []string
	err      error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{
		objects:  map[string][]cloud.Object{},
		uploaded: map[string][]byte{},
	}
}

func (f *fakeObjects) ListBuckets(_ context.Context) ([]cloud.Bucket, error) {
	return f.buckets, f.err
}

func (f *fakeObjects) ListObjects(_ context.Context, bucket, prefix string) ([]cloud.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []cloud.Object
	for _, o := range f.objects[bucket] {
		if strings.HasPrefix(o.Key, prefix) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (f *fakeObjects) Upload(_ context.Context, bucket, key string, reader io.Reader, _ string) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploaded[bucket+"/"+key] = data
	return nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, bucket, key string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, bucket+"/"+key)
	return nil
}

func (f *fakeObjects) PresignDownload(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://presigned.example.com/" + bucket + "/" + key, nil
}
