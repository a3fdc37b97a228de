package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setImageKitEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/desserts")
	t.Setenv("PRIVATE_KEY", "private_xxx")
	t.Setenv("PUBLIC_KEY", "public_xxx")
	t.Setenv("URL_ENDPOINT", "https://ik.imagekit.io/demo")
}

func TestLoadDefaults(t *testing.T) {
	setImageKitEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, ProviderImageKit, cfg.ImageProvider)
	assert.Equal(t, []string{"image-upload"}, cfg.UploadTags)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.AuthSecret)
}

func TestLoadFromDotEnv(t *testing.T) {
	// godotenv does not override variables that are already set.
	for _, key := range []string{"DATABASE_URL", "IMAGE_PROVIDER", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET", "UPLOAD_TAGS", "MAX_UPLOAD_MB"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DATABASE_URL=sqlite://./data/desserts.db\n"+
			"IMAGE_PROVIDER=Cloudinary\n"+
			"CLOUDINARY_CLOUD_NAME=demo\n"+
			"CLOUDINARY_API_KEY=key\n"+
			"CLOUDINARY_API_SECRET=secret\n"+
			"UPLOAD_TAGS=desserts, menu\n"+
			"MAX_UPLOAD_MB=2\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite://./data/desserts.db", cfg.DatabaseURL)
	assert.Equal(t, ProviderCloudinary, cfg.ImageProvider)
	assert.Equal(t, []string{"desserts", "menu"}, cfg.UploadTags)
	assert.EqualValues(t, 2<<20, cfg.MaxUploadBytes)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"missing imagekit key", map[string]string{"PRIVATE_KEY": ""}},
		{"cloudinary without credentials", map[string]string{"IMAGE_PROVIDER": "cloudinary"}},
		{"unknown provider", map[string]string{"IMAGE_PROVIDER": "s3"}},
		{"bad upload size", map[string]string{"MAX_UPLOAD_MB": "-1"}},
		{"bad shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setImageKitEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
