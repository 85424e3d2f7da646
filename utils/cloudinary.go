package utils

import (
	"fmt"

	"havenstay/config"
	"havenstay/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary builds the image store from configuration. It returns nil
// without error when credentials are not set.
func Cloudinary() (storage.ImageStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	return storage.NewCloudinaryStore(cld), nil
}
