// Package screenshot resolves boxscore screenshot keys to image bytes. The
// API serves these bytes to the browser and the Vision agent sends the same
// bytes to the model, so both always see the identical capture.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrScreenshotNotFound reports a key with no stored image behind it.
var ErrScreenshotNotFound = errors.New("screenshot not found")

// Source fetches a screenshot by the key stored in the screenshots table.
// Fetch returns the raw image bytes with their media type. Check reports
// whether the backing store is reachable, for readiness probes.
type Source interface {
	Fetch(ctx context.Context, key string) (data []byte, mediaType string, err error)
	Check(ctx context.Context) error
}

// cleanKey normalizes a screenshot key and rejects anything that could
// escape the source root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("screenshot key is required")
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid screenshot key: %q", key)
	}
	return cleaned, nil
}

// MediaTypeForKey maps a screenshot key's extension to its media type.
// Unknown extensions fall back to PNG, which is what the capture pipeline
// and the seed renderer write.
func MediaTypeForKey(key string) string {
	idx := strings.LastIndex(key, ".")
	if idx < 0 {
		return "image/png"
	}
	switch strings.ToLower(key[idx:]) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
