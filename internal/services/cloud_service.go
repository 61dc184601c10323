package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"talenthub_backend/internal/cloud"
	"talenthub_backend/internal/services/dto"
	"talenthub_backend/pkg/apperrors"
)

const presignExpiry = time.Hour

// CloudService proxies a narrow slice of EC2 and S3 to the dashboard so
// admins never need raw AWS credentials in the browser. All object
// operations target the single configured bucket.
type CloudService interface {
	ListInstances(ctx context.Context) ([]cloud.Instance, error)
	StartInstance(ctx context.Context, instanceID string) (*dto.InstanceActionResponse, error)
	StopInstance(ctx context.Context, instanceID string) (*dto.InstanceActionResponse, error)
	ListBuckets(ctx context.Context) ([]cloud.Bucket, error)
	ListObjects(ctx context.Context, prefix string) ([]cloud.Object, error)
	UploadObject(ctx context.Context, filename string, reader io.Reader, contentType string) (*dto.UploadObjectResponse, error)
	DeleteObject(ctx context.Context, key string) error
	SignedDownloadURL(ctx context.Context, key string) (*dto.PresignResponse, error)
}

type CloudServiceImpl struct {
	compute cloud.ComputeClient
	objects cloud.ObjectStoreClient
	bucket  string
}

func NewCloudService(compute cloud.ComputeClient, objects cloud.ObjectStoreClient, bucket string) CloudService {
	return &CloudServiceImpl{
		compute: compute,
		objects: objects,
		bucket:  bucket,
	}
}

func (s *CloudServiceImpl) ListInstances(ctx context.Context) ([]cloud.Instance, error) {
	instances, err := s.compute.ListInstances(ctx)
	if err != nil {
		return nil, apperrors.UpstreamError("ec2", err)
	}
	return instances, nil
}

func (s *CloudServiceImpl) StartInstance(ctx context.Context, instanceID string) (*dto.InstanceActionResponse, error) {
	if instanceID == "" {
		return nil, apperrors.NewBadRequestError("Instance ID is required")
	}

	state, err := s.compute.StartInstance(ctx, instanceID)
	if err != nil {
		return nil, apperrors.UpstreamError("ec2", err)
	}
	return &dto.InstanceActionResponse{InstanceID: instanceID, State: state}, nil
}

func (s *CloudServiceImpl) StopInstance(ctx context.Context, instanceID string) (*dto.InstanceActionResponse, error) {
	if instanceID == "" {
		return nil, apperrors.NewBadRequestError("Instance ID is required")
	}

	state, err := s.compute.StopInstance(ctx, instanceID)
	if err != nil {
		return nil, apperrors.UpstreamError("ec2", err)
	}
	return &dto.InstanceActionResponse{InstanceID: instanceID, State: state}, nil
}

func (s *CloudServiceImpl) ListBuckets(ctx context.Context) ([]cloud.Bucket, error) {
	buckets, err := s.objects.ListBuckets(ctx)
	if err != nil {
		return nil, apperrors.UpstreamError("s3", err)
	}
	return buckets, nil
}

func (s *CloudServiceImpl) ListObjects(ctx context.Context, prefix string) ([]cloud.Object, error) {
	if err := s.requireBucket(); err != nil {
		return nil, err
	}

	objects, err := s.objects.ListObjects(ctx, s.bucket, prefix)
	if err != nil {
		return nil, apperrors.UpstreamError("s3", err)
	}
	return objects, nil
}

// UploadObject stores the file under a timestamped key so repeated uploads
// of the same filename never collide. The response carries a one-hour
// signed download link for the fresh object.
func (s *CloudServiceImpl) UploadObject(ctx context.Context, filename string, reader io.Reader, contentType string) (*dto.UploadObjectResponse, error) {
	if err := s.requireBucket(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), filename)
	if err := s.objects.Upload(ctx, s.bucket, key, reader, contentType); err != nil {
		return nil, apperrors.UpstreamError("s3", err)
	}

	url, err := s.objects.PresignDownload(ctx, s.bucket, key, presignExpiry)
	if err != nil {
		return nil, apperrors.UpstreamError("s3", err)
	}
	return &dto.UploadObjectResponse{Key: key, URL: url}, nil
}

func (s *CloudServiceImpl) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return apperrors.NewBadRequestError("Object key is required")
	}
	if err := s.requireBucket(); err != nil {
		return err
	}

	if err := s.objects.DeleteObject(ctx, s.bucket, key); err != nil {
		return apperrors.UpstreamError("s3", err)
	}
	return nil
}

func (s *CloudServiceImpl) SignedDownloadURL(ctx context.Context, key string) (*dto.PresignResponse, error) {
	if key == "" {
		return nil, apperrors.NewBadRequestError("Object key is required")
	}
	if err := s.requireBucket(); err != nil {
		return nil, err
	}

	url, err := s.objects.PresignDownload(ctx, s.bucket, key, presignExpiry)
	if err != nil {
		return nil, apperrors.UpstreamError("s3", err)
	}
	return &dto.PresignResponse{
		URL:       url,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

func (s *CloudServiceImpl) requireBucket() error {
	if s.bucket == "" {
		return apperrors.InternalError(errors.New("s3 bucket is not configured"))
	}
	return nil
}
