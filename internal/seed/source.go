package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileSource reads the seed CSV from the local filesystem.
type FileSource struct {
	Path string
}

// Open implements Source.
func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	return file, nil
}

// ObjectAPI is the subset of the S3 client the loader needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the seed CSV from an S3 object.
type S3Source struct {
	Client ObjectAPI
	Bucket string
	Key    string
}

// Open implements Source.
func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return out.Body, nil
}
