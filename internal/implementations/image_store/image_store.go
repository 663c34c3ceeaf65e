package imagestore

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const keyPrefix = "profiles"

type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores profile images under a random key and returns their public URL.
type S3 struct {
	client        s3Client
	bucket        string
	publicBaseURL url.URL
	newKey        func() string
}

// NewS3 creates an image store. A non-empty endpoint points the client at an
// S3 compatible server using path-style addressing.
func NewS3(awsConfig aws.Config, bucket string, endpoint string, publicBaseURL url.URL) *S3 {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		newKey:        func() string { return uuid.NewString() },
	}
}

func (s *S3) Upload(ctx context.Context, contentType string, body io.Reader) (string, error) {
	if body == nil {
		return "", errors.New("image body is not defined")
	}
	key := keyPrefix + "/" + s.newKey()
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return s.publicBaseURL.JoinPath(key).String(), nil
}
