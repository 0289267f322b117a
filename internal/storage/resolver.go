package storage

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// Backend kinds
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

var (
	// ErrNoFile rejects uploads without a file part.
	ErrNoFile = errors.New("no file supplied")
	// ErrBackendUnavailable wraps remote object-store failures.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// DestinationKind tags a resolved destination.
type DestinationKind int

const (
	DestinationLocal DestinationKind = iota
	DestinationCloud
)

// Destination is where the next upload lands: a local directory that is
// guaranteed to exist, or a cloud folder name created implicitly by the
// backend.
type Destination struct {
	Kind   DestinationKind
	Path   string // local directory, when Kind == DestinationLocal
	Folder string // cloud folder name, when Kind == DestinationCloud
}

// UploadResult references a stored asset. Path is set for local uploads;
// SecureURL and PublicID for cloud uploads.
type UploadResult struct {
	Path      string
	SecureURL string
	PublicID  string
}

// Uploader streams a file to one concrete backend.
type Uploader interface {
	Upload(ctx context.Context, dest Destination, r io.Reader, originalName string) (*UploadResult, error)
}

// Resolver picks the upload destination from the mutable storage
// configuration and delegates the transfer to the configured backend.
// Swapping local disk for an object store only changes the injected
// Uploader, never the HTTP-facing handler.
type Resolver struct {
	store    Store
	backend  string
	uploader Uploader
	log      *logrus.Logger
}

func NewResolver(store Store, backend string, uploader Uploader, log *logrus.Logger) *Resolver {
	return &Resolver{
		store:    store,
		backend:  backend,
		uploader: uploader,
		log:      log,
	}
}

// ResolveDestination reads the current configuration and prepares the
// destination. Local directories are created recursively if absent.
func (r *Resolver) ResolveDestination(ctx context.Context) (Destination, error) {
	settings := r.store.Read(ctx)

	if r.backend == BackendLocal {
		dest := Destination{Kind: DestinationLocal, Path: settings.Path}
		if err := ensureDir(dest.Path); err != nil {
			return Destination{}, err
		}
		return dest, nil
	}

	return Destination{Kind: DestinationCloud, Folder: settings.Path}, nil
}

// Upload resolves the destination and streams the file there.
func (r *Resolver) Upload(ctx context.Context, file io.Reader, originalName string) (*UploadResult, error) {
	if file == nil || originalName == "" {
		return nil, ErrNoFile
	}

	dest, err := r.ResolveDestination(ctx)
	if err != nil {
		return nil, err
	}

	result, err := r.uploader.Upload(ctx, dest, file, originalName)
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"name":      originalName,
		"path":      result.Path,
		"public_id": result.PublicID,
	}).Info("File uploaded")

	return result, nil
}
