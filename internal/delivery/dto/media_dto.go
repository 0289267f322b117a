package dto

type StoragePathResponse struct {
	Path string `json:"path"`
}

type UploadResponse struct {
	VideoURL string `json:"video_url,omitempty"`
	Path     string `json:"path,omitempty"`
	PublicID string `json:"public_id,omitempty"`
}
