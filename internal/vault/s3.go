package vault

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cyberdl/internal/config"
	"cyberdl/internal/core"
)

// S3Vault stores upload payloads in an S3 bucket. Multipart uploads are
// handled by the transfer manager, so payload size is not limited by memory.
type S3Vault struct {
	name          string
	bucket        string
	prefix        string
	region        string
	publicBaseURL string
	client        *s3.Client
	uploader      *manager.Uploader
}

var _ core.Vault = (*S3Vault)(nil)

// NewS3Vault creates a vault backed by the configured bucket. Static
// credentials from the config take precedence over the default chain.
func NewS3Vault(ctx context.Context, cfg config.VaultConfig) (*S3Vault, error) {
	if cfg.S3Bucket == "" || cfg.S3Region == "" {
		return nil, fmt.Errorf("s3 vault requires s3_bucket and s3_region")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Vault{
		name:          cfg.Name,
		bucket:        cfg.S3Bucket,
		prefix:        cfg.S3Prefix,
		region:        cfg.S3Region,
		publicBaseURL: cfg.PublicBaseURL,
		client:        client,
		uploader:      manager.NewUploader(client),
	}, nil
}

// Put uploads the payload and returns its public URL.
func (v *S3Vault) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	objectKey := key
	if v.prefix != "" {
		objectKey = path.Join(v.prefix, key)
	}

	_, err := v.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(v.bucket),
		Key:           aws.String(objectKey),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to s3: %w", err)
	}

	if v.publicBaseURL != "" {
		return v.publicBaseURL + "/" + objectKey, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", v.bucket, v.region, objectKey), nil
}

// ValidateSetup verifies the bucket is reachable with the configured
// credentials.
func (v *S3Vault) ValidateSetup() error {
	_, err := v.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(v.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 bucket not accessible: %w", err)
	}
	return nil
}
