package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPODImage(t *testing.T) {
	a := APOD{MediaType: "image", URL: "https://x/low.jpg", HDURL: "https://x/hd.jpg"}
	assert.Equal(t, "https://x/hd.jpg", a.Image())

	a = APOD{MediaType: "image", URL: "https://x/low.jpg"}
	assert.Equal(t, "https://x/low.jpg", a.Image())

	a = APOD{MediaType: "video", URL: "https://youtube/x", Thumbnail: "https://x/thumb.jpg"}
	assert.Equal(t, "https://x/thumb.jpg", a.Image())
}
