// Package youtube extracts video ids from the URL shapes YouTube uses
// and derives the highest-resolution thumbnail for them.
package youtube

import (
	"fmt"
	"regexp"
)

// videoIDPattern matches the id segment across the common URL shapes:
// youtu.be/<id>, /v/<id>, /u/<n>/<id>, /embed/<id>, watch?v=<id> and
// &v=<id>. The capture stops at #, & or ?.
var videoIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// VideoID extracts the 11-character video id from a YouTube URL.
// Returns false when the URL does not look like a YouTube link or the
// candidate id has the wrong length.
func VideoID(rawURL string) (string, bool) {
	matches := videoIDPattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", false
	}

	id := matches[2]
	if len(id) != 11 {
		return "", false
	}
	return id, true
}

// ThumbnailURL derives the maxresdefault thumbnail for a YouTube URL.
// Returns false when no valid video id can be extracted.
func ThumbnailURL(rawURL string) (string, bool) {
	id, ok := VideoID(rawURL)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id), true
}
