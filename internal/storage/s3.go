package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	appconfig "go-consult-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Uploader streams files to an S3-compatible object store (MinIO
// included) and hands back a presigned GET URL plus the object key.
type S3Uploader struct {
	client    s3API
	presigner s3Presigner
	config    appconfig.S3Config
}

func NewS3Uploader(cfg appconfig.S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:    client,
		presigner: s3.NewPresignClient(client),
		config:    cfg,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, dest Destination, r io.Reader, originalName string) (*UploadResult, error) {
	key := objectKey(dest.Folder, originalName)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.config.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType(originalName)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	req, err := u.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.config.PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &UploadResult{
		SecureURL: req.URL,
		PublicID:  key,
	}, nil
}

// objectKey namespaces uploads by folder and prefixes a UUID so repeated
// uploads of the same filename never collide.
func objectKey(folder, originalName string) string {
	return fmt.Sprintf("%s/%s-%s", folder, uuid.New(), filepath.Base(originalName))
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
