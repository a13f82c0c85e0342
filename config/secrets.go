package config

import "os"

// GetDeleteSecret is the secondary confirmation value required before a
// record delete. Configuration, not a literal: the default only keeps old
// deployments working until DELETE_PASSWORD is set.
func GetDeleteSecret() string {
	v := os.Getenv("DELETE_PASSWORD")
	if v == "" {
		return "1718"
	}
	return v
}

func GetJWTKey() []byte {
	return []byte(os.Getenv("BYTE_KEY"))
}

func GetImageHostUploadURL() string {
	return os.Getenv("IMAGE_HOST_UPLOAD_URL")
}

func GetImageHostUploadPreset() string {
	return os.Getenv("IMAGE_HOST_UPLOAD_PRESET")
}

func GetImageHostFolder() string {
	v := os.Getenv("IMAGE_HOST_FOLDER")
	if v == "" {
		return "HajjImages/Uploads"
	}
	return v
}
