package usecase

import (
	"context"
	"io"

	"go-consult-api/internal/delivery/dto"
	"go-consult-api/internal/storage"

	"github.com/sirupsen/logrus"
)

type MediaUsecase interface {
	UploadVideo(ctx context.Context, file io.Reader, originalName string) (*dto.UploadResponse, error)
	UpdateStoragePath(ctx context.Context, newPath string) (*dto.StoragePathResponse, error)
	GetStoragePath(ctx context.Context) *dto.StoragePathResponse
}

type mediaUsecase struct {
	log      *logrus.Logger
	store    storage.Store
	resolver *storage.Resolver
}

func NewMediaUsecase(log *logrus.Logger, store storage.Store, resolver *storage.Resolver) MediaUsecase {
	return &mediaUsecase{
		log:      log,
		store:    store,
		resolver: resolver,
	}
}

func (u *mediaUsecase) UploadVideo(ctx context.Context, file io.Reader, originalName string) (*dto.UploadResponse, error) {
	result, err := u.resolver.Upload(ctx, file, originalName)
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		VideoURL: result.SecureURL,
		Path:     result.Path,
		PublicID: result.PublicID,
	}, nil
}

func (u *mediaUsecase) UpdateStoragePath(ctx context.Context, newPath string) (*dto.StoragePathResponse, error) {
	settings, err := u.store.Write(ctx, newPath)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Storage path updated to %s", settings.Path)
	return &dto.StoragePathResponse{Path: settings.Path}, nil
}

func (u *mediaUsecase) GetStoragePath(ctx context.Context) *dto.StoragePathResponse {
	settings := u.store.Read(ctx)
	return &dto.StoragePathResponse{Path: settings.Path}
}
