// Package s3 stores report files in an S3 compatible bucket (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"specifytools/internal/ports"
)

const (
	scheme        = "s3://"
	defaultRegion = "us-east-1"
	contentType   = "text/csv"
)

// Config holds explicit construction parameters. Empty fields fall back to
// the default AWS credential chain and region.
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // optional; set for MinIO and other S3 compatible servers
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
	HTTPClient      *http.Client
}

// Environment variables read by ConfigFromEnv:
//   SPECIFY_S3_REGION=<region> (default us-east-1)
//   SPECIFY_S3_ENDPOINT=<url> (optional)
//   SPECIFY_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// IsURL reports whether dest names an s3:// location
func IsURL(dest string) bool {
	return strings.HasPrefix(dest, scheme)
}

// ParseURL splits s3://bucket/prefix into bucket and key prefix
func ParseURL(dest string) (bucket, prefix string, err error) {
	if !IsURL(dest) {
		return "", "", fmt.Errorf("not an s3 url: %s", dest)
	}
	rest := strings.TrimPrefix(dest, scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("s3 url has no bucket: %s", dest)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// ConfigFromEnv builds a Config for dest using SPECIFY_S3_* variables
func ConfigFromEnv(dest string) (Config, error) {
	bucket, prefix, err := ParseURL(dest)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Bucket:    bucket,
		Prefix:    prefix,
		Region:    os.Getenv("SPECIFY_S3_REGION"),
		Endpoint:  os.Getenv("SPECIFY_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("SPECIFY_S3_PATH_STYLE"), "true"),
	}, nil
}

// Sink implements ports.ReportSink on an S3 bucket
type Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// Ensure Sink implements ReportSink
var _ ports.ReportSink = (*Sink)(nil)

// New creates an S3 sink from Config
func New(ctx context.Context, cfg Config) (*Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	if cfg.HTTPClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(cfg.HTTPClient))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return &Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Write uploads the report, replacing any object already under the key
func (s *Sink) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	key := s.key(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return scheme + s.bucket + "/" + key, nil
}

func (s *Sink) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}
