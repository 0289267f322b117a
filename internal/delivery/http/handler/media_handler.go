package handler

import (
	"errors"
	"net/http"

	"go-consult-api/internal/storage"
	"go-consult-api/internal/usecase"
	"go-consult-api/pkg/response"
)

// maxUploadSize caps the in-memory portion of multipart parsing; larger
// parts spill to temporary files.
const maxUploadSize = 32 << 20

type MediaHandler struct {
	mediaUsecase usecase.MediaUsecase
	env          string
}

func NewMediaHandler(mediaUsecase usecase.MediaUsecase, env string) *MediaHandler {
	return &MediaHandler{
		mediaUsecase: mediaUsecase,
		env:          env,
	}
}

// SaveVideo accepts a multipart upload under the "videoFile" field and
// streams it to the configured storage backend.
func (h *MediaHandler) SaveVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "No video file supplied", nil)
		return
	}

	file, header, err := r.FormFile("videoFile")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No video file supplied", nil)
		return
	}
	defer file.Close()

	result, err := h.mediaUsecase.UploadVideo(r.Context(), file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoFile):
			response.Error(w, http.StatusBadRequest, "No video file supplied", nil)
		case errors.Is(err, storage.ErrBackendUnavailable):
			// Backend error detail stays out of production responses.
			if h.env == "production" {
				response.BadGateway(w, "Upstream storage unavailable")
			} else {
				response.BadGateway(w, err.Error())
			}
		default:
			response.InternalServerError(w, "Failed to store video")
		}
		return
	}

	response.Success(w, http.StatusOK, "Video uploaded successfully", result)
}

// UpdateStoragePath persists a new upload destination. Admin only.
func (h *MediaHandler) UpdateStoragePath(w http.ResponseWriter, r *http.Request) {
	newPath := r.URL.Query().Get("newStoragePath")

	result, err := h.mediaUsecase.UpdateStoragePath(r.Context(), newPath)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyPath) {
			response.Error(w, http.StatusBadRequest, "newStoragePath is required", nil)
			return
		}
		response.InternalServerError(w, "Failed to update storage path")
		return
	}

	response.Success(w, http.StatusOK, "Storage path updated", result)
}

// GetStoragePath returns the currently configured upload destination.
func (h *MediaHandler) GetStoragePath(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Storage path retrieved", h.mediaUsecase.GetStoragePath(r.Context()))
}
