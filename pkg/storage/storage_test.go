package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "user-1-1700000000000.pdf", ObjectName("user-1", "slides.pdf", now))
	assert.Equal(t, "user-1-1700000000000.PNG", ObjectName("user-1", "photo.PNG", now))
	assert.Equal(t, "user-1-1700000000000", ObjectName("user-1", "noext", now))
	assert.Equal(t, "user-1-1700000000000.gz", ObjectName("user-1", "archive.tar.gz", now))
}

func TestOwnsObject(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	name := ObjectName("3f2c8a60-1111-4222-8333-944445555666", "slides.pdf", now)

	assert.True(t, OwnsObject("3f2c8a60-1111-4222-8333-944445555666", name))
	assert.False(t, OwnsObject("deadbeef-1111-4222-8333-944445555666", name))

	// The separator must follow the id; a bare prefix match is not
	// ownership.
	assert.False(t, OwnsObject("3f2c8a6", name))
	assert.False(t, OwnsObject("", ""))
}

func TestIsValidBucket(t *testing.T) {
	assert.True(t, IsValidBucket(BucketMedia))
	assert.True(t, IsValidBucket(BucketThumbnails))
	assert.True(t, IsValidBucket(BucketPreviews))
	assert.True(t, IsValidBucket(BucketAvatars))

	assert.False(t, IsValidBucket("backups"))
	assert.False(t, IsValidBucket(""))
	assert.False(t, IsValidBucket("Media"))
}
