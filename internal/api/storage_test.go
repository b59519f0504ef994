package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadImage(t *testing.T) {
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/parking-images/1718000000-photo.jpg", r.URL.Path)
		assert.Equal(t, "false", r.Header.Get("x-upsert"))
		assert.Equal(t, "3600", r.Header.Get("Cache-Control"))

		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Write([]byte(`{"Key": "parking-images/1718000000-photo.jpg"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", WithLogger(quietLogger()))
	url, err := client.UploadImage(context.Background(), []byte("image-bytes"), "1718000000-photo.jpg")

	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), gotBody)
	assert.Equal(t, server.URL+"/storage/v1/object/public/parking-images/1718000000-photo.jpg", url)
}

func TestClient_UploadImage_NameCollisionFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "The resource already exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", WithLogger(quietLogger()))
	_, err := client.UploadImage(context.Background(), []byte("image-bytes"), "taken.jpg")

	require.Error(t, err)

	var stErr *StorageError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, "could not upload the image", stErr.UserMessage)
	assert.ErrorIs(t, stErr.Cause, ErrConflict)
}

func TestClient_UploadImage_EmptyName(t *testing.T) {
	client := NewClient("https://example.supabase.co", "anon-key", WithLogger(quietLogger()))
	_, err := client.UploadImage(context.Background(), []byte("image-bytes"), "")

	var stErr *StorageError
	require.ErrorAs(t, err, &stErr)
}
