package services

import (
	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/auth"
	"talenthub_backend/internal/cloud"
	"talenthub_backend/internal/repositories"
	"talenthub_backend/internal/storage"
)

// Container holds every service the handlers depend on.
type Container struct {
	AuthService      AuthService
	UserService      UserService
	JobService       JobService
	CandidateService CandidateService
	CloudService     CloudService
}

func NewContainer(
	issuer *auth.TokenIssuer,
	aiClient ai.Client,
	store storage.Storage,
	compute cloud.ComputeClient,
	objects cloud.ObjectStoreClient,
	bucket string,
) *Container {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	candidateRepo := repositories.NewCandidateRepository()

	return &Container{
		AuthService:      NewAuthService(userRepo, issuer),
		UserService:      NewUserService(userRepo),
		JobService:       NewJobService(jobRepo, aiClient),
		CandidateService: NewCandidateService(candidateRepo, jobRepo, aiClient, store),
		CloudService:     NewCloudService(compute, objects, bucket),
	}
}
