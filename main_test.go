package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dessert-api/config"
	"dessert-api/imagehost"
)

func TestNewUploader(t *testing.T) {
	cfg := &config.Config{
		ImageProvider:  config.ProviderImageKit,
		PrivateKey:     "private_xxx",
		PublicKey:      "public_xxx",
		URLEndpoint:    "https://ik.imagekit.io/demo",
		CloudName:      "demo",
		CloudAPIKey:    "key",
		CloudAPISecret: "secret",
	}

	up, err := newUploader(cfg)
	require.NoError(t, err)
	assert.IsType(t, &imagehost.ImageKit{}, up)

	cfg.ImageProvider = config.ProviderCloudinary
	up, err = newUploader(cfg)
	require.NoError(t, err)
	assert.IsType(t, &imagehost.Cloudinary{}, up)
}
