// Package export uploads copies of the agenda workbook to S3.
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/pharma-scheduler/internal/config"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Uploader is the part of *s3.Client the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Source yields a consistent copy of the workbook.
type Source interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

type Result struct {
	Bucket string    `json:"bucket"`
	Key    string    `json:"key"`
	Size   int64     `json:"size"`
	At     time.Time `json:"exported_at"`
}

type S3Exporter struct {
	uploader Uploader
	source   Source
	bucket   string
	prefix   string
	now      func() time.Time
	log      zerolog.Logger
}

func NewS3Exporter(
	uploader Uploader,
	source Source,
	bucket, prefix string,
	now func() time.Time,
	log zerolog.Logger,
) *S3Exporter {
	if now == nil {
		now = time.Now
	}
	return &S3Exporter{
		uploader: uploader,
		source:   source,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		now:      now,
		log:      log,
	}
}

// NewS3Client builds a client from static credentials when they are set and
// from the SDK default chain (env, shared profile, IAM role) otherwise.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("export: load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Key is the object name for an export taken at t.
func (e *S3Exporter) Key(t time.Time) string {
	name := "agenda_" + t.Format("20060102_150405") + ".xlsx"
	if e.prefix == "" {
		return name
	}
	return path.Join(e.prefix, name)
}

func (e *S3Exporter) Export(ctx context.Context) (*Result, error) {
	if e.bucket == "" {
		return nil, fmt.Errorf("export: S3_BUCKET is not configured")
	}

	data, err := e.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	at := e.now()
	key := e.Key(at)
	size := int64(len(data))

	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(e.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(size),
		ContentType:          aws.String(contentTypeXLSX),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return nil, fmt.Errorf("export: put s3://%s/%s: %w", e.bucket, key, err)
	}

	e.log.Info().Str("bucket", e.bucket).Str("key", key).Int64("size", size).Msg("agenda exported")

	return &Result{Bucket: e.bucket, Key: key, Size: size, At: at}, nil
}
