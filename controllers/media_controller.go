package controllers

import (
	"encoding/json"
	"net/http"

	"linkup_server/services"
	"linkup_server/utils"

	"github.com/rs/zerolog/log"
)

// MediaController issues presigned S3 URLs for profile photo upload and read.
type MediaController struct {
	S3 *services.S3Service
}

// NewMediaController creates a new MediaController instance
func NewMediaController(s3 *services.S3Service) *MediaController {
	return &MediaController{S3: s3}
}

// HandleGeneratePresignedURL returns a presigned PUT URL for uploading a
// profile photo along with the key it will be stored under.
func (mc *MediaController) HandleGeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName" validate:"required,max=200"`
		FileType string `json:"fileType" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	url, key, err := mc.S3.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		log.Error().Err(err).Msg("Presigned upload URL generation failed")
		utils.ServerError(w, "Failed to generate presigned URL")
		return
	}

	utils.SendSuccess(w, "Presigned URL generated successfully", map[string]string{
		"url": url,
		"key": key,
	}, http.StatusOK)
}

// HandleGetReadURL returns a presigned GET URL for a stored photo key.
func (mc *MediaController) HandleGetReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		utils.SendError(w, "Validation Error",
			[]utils.FieldError{{Field: "key", Message: "key query parameter is required"}}, http.StatusBadRequest)
		return
	}

	url, err := mc.S3.GenerateReadURL(r.Context(), key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Presigned read URL generation failed")
		utils.ServerError(w, "Failed to generate read URL")
		return
	}

	utils.SendSuccess(w, "Read URL generated successfully", map[string]string{"url": url}, http.StatusOK)
}
