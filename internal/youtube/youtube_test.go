package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoID_URLVariants(t *testing.T) {
	variants := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
		"https://www.youtube.com/u/1/dQw4w9WgXcQ",
	}

	for _, url := range variants {
		id, ok := VideoID(url)
		require.True(t, ok, "url %q should yield an id", url)
		assert.Equal(t, "dQw4w9WgXcQ", id, "url %q", url)
	}
}

func TestVideoID_StopsAtDelimiters(t *testing.T) {
	id, ok := VideoID("https://youtu.be/dQw4w9WgXcQ?si=abcdef")
	require.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	id, ok = VideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ#t=30")
	require.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)
}

func TestVideoID_RejectsWrongLength(t *testing.T) {
	_, ok := VideoID("https://youtu.be/short")
	assert.False(t, ok)

	_, ok = VideoID("https://www.youtube.com/watch?v=waytoolongvideoid")
	assert.False(t, ok)
}

func TestVideoID_RejectsNonYouTube(t *testing.T) {
	_, ok := VideoID("https://vimeo.com/123456789")
	assert.False(t, ok)

	_, ok = VideoID("")
	assert.False(t, ok)
}

func TestThumbnailURL_SameIDSameThumbnail(t *testing.T) {
	first, ok := ThumbnailURL("https://youtu.be/dQw4w9WgXcQ")
	require.True(t, ok)

	second, ok := ThumbnailURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", first)
}

func TestThumbnailURL_InvalidURL(t *testing.T) {
	_, ok := ThumbnailURL("https://example.com/video.mp4")
	assert.False(t, ok)
}
