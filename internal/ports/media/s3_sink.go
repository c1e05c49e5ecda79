package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// S3Client is the subset of the AWS S3 client used by the sink.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads images to an S3 (or S3-compatible) bucket.
type S3Sink struct {
	client    S3Client
	bucket    string
	publicURL string
}

// NewS3Sink creates a sink for bucket. publicURL is the base that object keys
// are appended to when building references.
func NewS3Sink(client S3Client, bucket, publicURL string) *S3Sink {
	return &S3Sink{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// S3PublicURL returns the default base URL for objects in bucket. A custom
// endpoint (LocalStack, MinIO) uses path-style addressing.
func S3PublicURL(bucket, region, endpoint string) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

func (s *S3Sink) Store(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	tracer := otel.Tracer("s3-media-sink")
	ctx, span := tracer.Start(ctx, "put_object", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("aws.s3.bucket", s.bucket),
		attribute.String("aws.s3.key", name),
	)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put object failed")
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", name, s.bucket, err)
	}

	return s.publicURL + "/" + escapePath(name), nil
}
