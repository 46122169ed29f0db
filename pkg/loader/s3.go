package loader

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/navkit-dev/navkit/internal/errors"
)

// S3Source fetches route-module manifests from an S3 bucket. Deployments
// that publish route bundles per release can point the loader at the
// release prefix instead of shipping manifests with the binary.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	source := loader.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "routes/v42/")
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Source creates an S3-backed manifest source.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: key prefix for manifests (e.g., "routes/v42/")
func NewS3Source(client *s3.Client, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := s.prefix + name + ".json"
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("N062").
			WithMessagef("fetching manifest s3://%s/%s", s.bucket, key).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.FromError(err, "N062")
	}
	return data, nil
}
