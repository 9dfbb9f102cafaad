package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// UploadLimitMB caps the multipart body size of a reconciliation upload.
	UploadLimitMB int `mapstructure:"upload_limit_mb" default:"32" validate:"min=1"`
}

// BodyLimit returns the upload limit in bytes.
func (c Config) BodyLimit() int {
	if c.UploadLimitMB <= 0 {
		return 32 << 20
	}
	return c.UploadLimitMB << 20
}
