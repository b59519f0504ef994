package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const imagesBucket = "parking-images"

// UploadImage stores an image blob under the given object name and returns
// its publicly resolvable URL. Names are not deduplicated: a collision fails
// the upload because upsert is disabled.
func (c *Client) UploadImage(ctx context.Context, data []byte, name string) (string, error) {
	if name == "" {
		return "", &StorageError{UserMessage: "could not upload the image", Cause: fmt.Errorf("empty object name")}
	}

	path := fmt.Sprintf("/storage/v1/object/%s/%s", imagesBucket, url.PathEscape(name))

	_, err := c.requestRaw(ctx, http.MethodPost, path, data, map[string]string{
		"Content-Type":  http.DetectContentType(data),
		"Cache-Control": "3600",
		"x-upsert":      "false",
	})
	if err != nil {
		c.log.WithError(err).WithField("object", name).Error("failed to upload parking image")
		return "", &StorageError{
			UserMessage: "could not upload the image",
			Cause:       err,
		}
	}

	return c.PublicImageURL(name), nil
}

// PublicImageURL returns the public URL for an object in the images bucket.
func (c *Client) PublicImageURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, imagesBucket, url.PathEscape(name))
}
