package cloud

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const maxListedObjects = 100

type Config struct {
	Region    string
	AccessKey string
	SecretKey string
}

// AWSClient implements ComputeClient and ObjectStoreClient on a shared
// session.
type AWSClient struct {
	ec2      *ec2.EC2
	s3       *s3.S3
	uploader *s3manager.Uploader
}

func NewAWSClient(cfg Config) (*AWSClient, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &AWSClient{
		ec2:      ec2.New(sess),
		s3:       s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (c *AWSClient) ListInstances(ctx context.Context) ([]Instance, error) {
	output, err := c.ec2.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	instances := []Instance{}
	for _, reservation := range output.Reservations {
		for _, inst := range reservation.Instances {
			instances = append(instances, flattenInstance(inst))
		}
	}
	return instances, nil
}

// flattenInstance maps the nested API shape onto the client-facing one.
// Missing addresses become "N/A" and an untagged instance is "Unnamed".
func flattenInstance(inst *ec2.Instance) Instance {
	out := Instance{
		ID:        aws.StringValue(inst.InstanceId),
		Type:      aws.StringValue(inst.InstanceType),
		PublicIP:  "N/A",
		PrivateIP: "N/A",
		Name:      "Unnamed",
	}

	if inst.State != nil {
		out.State = aws.StringValue(inst.State.Name)
	}
	if inst.PublicIpAddress != nil {
		out.PublicIP = aws.StringValue(inst.PublicIpAddress)
	}
	if inst.PrivateIpAddress != nil {
		out.PrivateIP = aws.StringValue(inst.PrivateIpAddress)
	}
	if inst.LaunchTime != nil {
		out.LaunchTime = *inst.LaunchTime
	}
	if inst.Placement != nil {
		out.AZ = aws.StringValue(inst.Placement.AvailabilityZone)
	}
	for _, tag := range inst.Tags {
		if aws.StringValue(tag.Key) == "Name" {
			out.Name = aws.StringValue(tag.Value)
			break
		}
	}
	return out
}

func (c *AWSClient) StartInstance(ctx context.Context, instanceID string) (string, error) {
	output, err := c.ec2.StartInstancesWithContext(ctx, &ec2.StartInstancesInput{
		InstanceIds: []*string{aws.String(instanceID)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to start instance: %w", err)
	}
	if len(output.StartingInstances) == 0 || output.StartingInstances[0].CurrentState == nil {
		return "", fmt.Errorf("no state returned for instance %s", instanceID)
	}
	return aws.StringValue(output.StartingInstances[0].CurrentState.Name), nil
}

func (c *AWSClient) StopInstance(ctx context.Context, instanceID string) (string, error) {
	output, err := c.ec2.StopInstancesWithContext(ctx, &ec2.StopInstancesInput{
		InstanceIds: []*string{aws.String(instanceID)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to stop instance: %w", err)
	}
	if len(output.StoppingInstances) == 0 || output.StoppingInstances[0].CurrentState == nil {
		return "", fmt.Errorf("no state returned for instance %s", instanceID)
	}
	return aws.StringValue(output.StoppingInstances[0].CurrentState.Name), nil
}

func (c *AWSClient) ListBuckets(ctx context.Context) ([]Bucket, error) {
	output, err := c.s3.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := []Bucket{}
	for _, b := range output.Buckets {
		bucket := Bucket{Name: aws.StringValue(b.Name)}
		if b.CreationDate != nil {
			bucket.CreationDate = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func (c *AWSClient) ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error) {
	output, err := c.s3.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(maxListedObjects),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
	}

	objects := []Object{}
	for _, o := range output.Contents {
		object := Object{
			Key:  aws.StringValue(o.Key),
			Size: aws.Int64Value(o.Size),
		}
		if o.LastModified != nil {
			object.LastModified = *o.LastModified
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (c *AWSClient) Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error {
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to %s: %w", bucket, err)
	}
	return nil
}

func (c *AWSClient) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from %s: %w", key, bucket, err)
	}
	return nil
}

func (c *AWSClient) PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, _ := c.s3.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return url, nil
}
