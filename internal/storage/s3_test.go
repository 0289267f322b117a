package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	appconfig "go-consult-api/config"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3Client struct {
	putErr  error
	lastKey string
	body    []byte
}

func (f *fakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.lastKey = *params.Key
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &s3.PutObjectOutput{}, nil
}

type fakePresigner struct {
	err error
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://objects.example.com/" + *params.Key + "?signed"}, nil
}

func newTestS3Uploader(client s3API, presigner s3Presigner) *S3Uploader {
	return &S3Uploader{
		client:    client,
		presigner: presigner,
		config: appconfig.S3Config{
			Bucket:        "consult",
			PresignExpiry: 15 * time.Minute,
		},
	}
}

func TestS3Uploader_Upload(t *testing.T) {
	t.Parallel()

	client := &fakeS3Client{}
	uploader := newTestS3Uploader(client, &fakePresigner{})
	resolver := NewResolver(NewMemoryStore("consult-videos"), BackendS3, uploader, logrus.New())

	content := []byte("fake video bytes")
	result, err := resolver.Upload(context.Background(), bytes.NewReader(content), "clip.mp4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(client.lastKey, "consult-videos/"))
	assert.True(t, strings.HasSuffix(client.lastKey, "-clip.mp4"))
	assert.Equal(t, content, client.body)

	assert.NotEmpty(t, result.SecureURL)
	assert.Equal(t, client.lastKey, result.PublicID)
	assert.Empty(t, result.Path)
}

func TestS3Uploader_BackendUnavailable(t *testing.T) {
	t.Parallel()

	client := &fakeS3Client{putErr: errors.New("connection refused")}
	uploader := newTestS3Uploader(client, &fakePresigner{})
	resolver := NewResolver(NewMemoryStore("consult-videos"), BackendS3, uploader, logrus.New())

	_, err := resolver.Upload(context.Background(), bytes.NewReader([]byte("x")), "clip.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestS3Uploader_PresignFailure(t *testing.T) {
	t.Parallel()

	uploader := newTestS3Uploader(&fakeS3Client{}, &fakePresigner{err: errors.New("presign failed")})

	dest := Destination{Kind: DestinationCloud, Folder: "consult-videos"}
	_, err := uploader.Upload(context.Background(), dest, bytes.NewReader([]byte("x")), "clip.mp4")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestObjectKeyUnique(t *testing.T) {
	t.Parallel()

	a := objectKey("folder", "clip.mp4")
	b := objectKey("folder", "clip.mp4")
	assert.NotEqual(t, a, b)
}
