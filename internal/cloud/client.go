package cloud

import (
	"context"
	"io"
	"time"
)

// Instance is the flattened view of an EC2 instance returned to clients.
type Instance struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	State      string    `json:"state"`
	PublicIP   string    `json:"publicIp"`
	PrivateIP  string    `json:"privateIp"`
	LaunchTime time.Time `json:"launchTime"`
	Name       string    `json:"name"`
	AZ         string    `json:"az"`
}

type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creationDate"`
}

type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ComputeClient is the narrow EC2 surface the cloud endpoints use.
type ComputeClient interface {
	ListInstances(ctx context.Context) ([]Instance, error)
	// StartInstance returns the transitional state reported by the API
	StartInstance(ctx context.Context, instanceID string) (string, error)
	StopInstance(ctx context.Context, instanceID string) (string, error)
}

// ObjectStoreClient is the narrow S3 surface the cloud endpoints use.
type ObjectStoreClient interface {
	ListBuckets(ctx context.Context) ([]Bucket, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)
	Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error
	DeleteObject(ctx context.Context, bucket, key string) error
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
