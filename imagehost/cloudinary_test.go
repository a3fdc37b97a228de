package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) *Cloudinary {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewCloudinary("demo", "key", "secret", Options{Tags: []string{"image-upload"}})
	require.NoError(t, err)
	c.cld.Config.API.UploadPrefix = srv.URL
	c.cld.Upload.Config.API.UploadPrefix = srv.URL
	return c
}

func TestCloudinaryUpload(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/upload"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"waffle_6kr5MDkWi","secure_url":"https://res.cloudinary.com/demo/image/upload/waffle_6kr5MDkWi.jpg"}`))
	})

	res, err := c.Upload(context.Background(), strings.NewReader("jpeg"), "waffle.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/waffle_6kr5MDkWi.jpg", res.URL)
	assert.Equal(t, "waffle_6kr5MDkWi", res.FileID)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := c.Upload(context.Background(), strings.NewReader("not an image"), "waffle.jpg")
	assert.ErrorIs(t, err, ErrUploadRejected)
	assert.Contains(t, err.Error(), "Invalid image file")
}
