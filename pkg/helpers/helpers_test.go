package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-05T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("05/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate(" ")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNights(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, Nights(start, start.AddDate(0, 0, 4)))
	assert.Equal(t, 1, Nights(start, start.Add(3*time.Hour)))
	assert.Equal(t, 0, Nights(start, start))
	assert.Equal(t, 0, Nights(start, start.Add(-time.Hour)))
}

func TestUploadName(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "1700000000123-avatar.png", UploadName(at, "avatar.png"))
	assert.Equal(t, "1700000000123-passwd", UploadName(at, "../../etc/passwd"))
	assert.Equal(t, "1700000000123-my_photo.jpg", UploadName(at, `C:\Users\me\my photo.jpg`))
	assert.Equal(t, "1700000000123-file", UploadName(at, ""))
}
