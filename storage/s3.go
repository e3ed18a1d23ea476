package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archive pushes finished renders and their sidecars to an S3 bucket.
type S3Archive struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archive builds an archive on the default AWS credential chain.
// Bucket comes from S3_BUCKET; an empty bucket disables archiving.
func NewS3Archive(ctx context.Context, region string) (*S3Archive, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Archive{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		prefix: os.Getenv("S3_PREFIX"),
	}, nil
}

// ArchiveRender uploads the video and sidecar under renders/<runID>/.
func (a *S3Archive) ArchiveRender(ctx context.Context, runID, videoPath, sidecarPath string) error {
	if err := a.putFile(ctx, a.key(runID, videoPath), videoPath, "video/mp4"); err != nil {
		return err
	}
	if sidecarPath != "" {
		if err := a.putFile(ctx, a.key(runID, sidecarPath), sidecarPath, "application/json"); err != nil {
			return err
		}
	}
	log.Printf("[storage] ✅ archived run %s to s3://%s", runID, a.bucket)
	return nil
}

func (a *S3Archive) key(runID, filePath string) string {
	return path.Join(a.prefix, "renders", runID, path.Base(filePath))
}

func (a *S3Archive) putFile(ctx context.Context, key, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()
	return a.Put(ctx, key, file, contentType)
}

// Put uploads one object.
func (a *S3Archive) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}
