// internal/uploads/s3.go
package uploads

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the subset of the S3 client used by S3Store.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client    ObjectPutter
	bucket    string
	prefix    string
	publicURL string
}

// NewS3Store stores objects under prefix in bucket. publicURL (e.g. a CDN
// origin) is used to build returned URLs; when empty the regional bucket
// endpoint is used.
func NewS3Store(client ObjectPutter, bucket, region, prefix, publicURL string) *S3Store {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix, publicURL: publicURL}
}

func NewS3StoreFromRegion(ctx context.Context, bucket, region, publicURL string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return NewS3Store(s3.NewFromConfig(cfg), bucket, region, "meal-images", publicURL), nil
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
