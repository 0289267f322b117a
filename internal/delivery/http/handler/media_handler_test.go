package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-consult-api/internal/delivery/dto"
	"go-consult-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaUsecase struct {
	uploadErr error
}

func (f *fakeMediaUsecase) UploadVideo(ctx context.Context, file io.Reader, originalName string) (*dto.UploadResponse, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &dto.UploadResponse{Path: "/tmp/" + originalName}, nil
}

func (f *fakeMediaUsecase) UpdateStoragePath(ctx context.Context, newPath string) (*dto.StoragePathResponse, error) {
	return &dto.StoragePathResponse{Path: newPath}, nil
}

func (f *fakeMediaUsecase) GetStoragePath(ctx context.Context) *dto.StoragePathResponse {
	return &dto.StoragePathResponse{Path: "videos"}
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("videoFile", "clip.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func responseMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func TestSaveVideo_BackendErrorHiddenInProduction(t *testing.T) {
	t.Parallel()

	backendErr := fmt.Errorf("%w: AccessDenied: internal-endpoint refused", storage.ErrBackendUnavailable)
	h := NewMediaHandler(&fakeMediaUsecase{uploadErr: backendErr}, "production")

	rec := httptest.NewRecorder()
	h.SaveVideo(rec, uploadRequest(t))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Upstream storage unavailable", responseMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "internal-endpoint")
}

func TestSaveVideo_BackendErrorDetailedOutsideProduction(t *testing.T) {
	t.Parallel()

	backendErr := fmt.Errorf("%w: AccessDenied: internal-endpoint refused", storage.ErrBackendUnavailable)
	h := NewMediaHandler(&fakeMediaUsecase{uploadErr: backendErr}, "development")

	rec := httptest.NewRecorder()
	h.SaveVideo(rec, uploadRequest(t))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, responseMessage(t, rec), "internal-endpoint refused")
}
