package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// One pattern covers the watch, short-link, and shorts URL shapes: an
// 11-character id token following either "v=" or a path separator, ended by a
// URL delimiter or the end of the string. A single match avoids the
// brittleness of ordered substring checks when a URL carries several markers.
var videoIDPattern = regexp.MustCompile(`(?:[?&]v=|/)([0-9A-Za-z_-]{11})(?:[?&/#]|$)`)

// ExtractVideoID parses a URL string into the canonical 11-character video
// id. It fails with ErrInvalidURL rather than guessing a partial id, so the
// caller can skip and report the offending URL.
func ExtractVideoID(url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	match := videoIDPattern.FindStringSubmatch(url)
	if len(match) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	return match[1], nil
}
