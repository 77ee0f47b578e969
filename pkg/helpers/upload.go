package helpers

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UploadName builds the stored file name "<unix millis>-<original base name>".
func UploadName(at time.Time, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20, r == '/', r == ':':
			return -1
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		base = "file"
	}
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + base
}
