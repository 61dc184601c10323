package dto

type DeleteObjectRequest struct {
	Key string `json:"key" validate:"required"`
}

type PresignResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

type InstanceActionResponse struct {
	InstanceID string `json:"instanceId"`
	State      string `json:"state"`
}

type UploadObjectResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
