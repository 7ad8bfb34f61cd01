// Package archive mirrors stored summaries to an S3 bucket as JSON objects.
// The document store stays the source of truth; the mirror is best effort.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"newsbrief/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Mirror copies summaries somewhere outside the document store.
type Mirror interface {
	Put(ctx context.Context, a *types.ArticleSummary) error
	Delete(ctx context.Context, url string) error
}

// S3Config contains minimal configuration for creating the mirror.
// Region and Profile fall back to the standard AWS config chain when empty.
type S3Config struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string
	// UsePathStyle forces path-style addressing (MinIO and other S3-compatible stores).
	UsePathStyle bool
}

// objectAPI is the part of the S3 client the mirror uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3 struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3 creates the mirror using the default AWS configuration chain,
// with optional overrides from cfg.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	c := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3(c, cfg.Bucket, cfg.Prefix), nil
}

func newS3(client objectAPI, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for an article URL.
func (s *S3) Key(url string) string {
	return s.prefix + "articles/" + types.GenerateID(url) + ".json"
}

type document struct {
	ID string `json:"id"`
	*types.ArticleSummary
}

// Put uploads the summary as <prefix>articles/<id>.json.
func (s *S3) Put(ctx context.Context, a *types.ArticleSummary) error {
	body, err := json.Marshal(document{ID: a.ID(), ArticleSummary: a})
	if err != nil {
		return fmt.Errorf("encode archive document: %w", err)
	}

	key := s.Key(a.URL)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s (%s): %w", s.bucket, key, errorCode(err), err)
	}
	return nil
}

// Delete removes the archived object. S3 reports success for missing keys.
func (s *S3) Delete(ctx context.Context, url string) error {
	key := s.Key(url)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete s3://%s/%s (%s): %w", s.bucket, key, errorCode(err), err)
	}
	return nil
}

// errorCode extracts the S3 API error code, e.g. "NoSuchBucket" or "AccessDenied".
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return "unknown"
}

// Noop is used when no bucket is configured.
type Noop struct{}

func (Noop) Put(context.Context, *types.ArticleSummary) error { return nil }
func (Noop) Delete(context.Context, string) error             { return nil }
