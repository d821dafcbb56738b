package transcript

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"WatchURL", "https://www.youtube.com/watch?v=ssYt09bCgUY", "ssYt09bCgUY", false},
		{"WatchURLWithParams", "https://www.youtube.com/watch?v=ssYt09bCgUY&list=PLx&t=5", "ssYt09bCgUY", false},
		{"ShortLink", "https://youtu.be/ssYt09bCgUY", "ssYt09bCgUY", false},
		{"ShortLinkWithTimestamp", "https://youtu.be/ssYt09bCgUY?t=5", "ssYt09bCgUY", false},
		{"Shorts", "https://www.youtube.com/shorts/ssYt09bCgUY", "ssYt09bCgUY", false},
		{"ShortsWithParams", "https://www.youtube.com/shorts/ssYt09bCgUY?feature=share", "ssYt09bCgUY", false},
		{"EmbedURL", "https://www.youtube.com/embed/ssYt09bCgUY", "ssYt09bCgUY", false},
		{"MobileWatch", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"IDWithUnderscoreAndDash", "https://www.youtube.com/watch?v=a_b-C1d2E3f", "a_b-C1d2E3f", false},
		{"NotAURL", "not a url", "", true},
		{"Empty", "", "", true},
		{"WhitespaceOnly", "   ", "", true},
		{"TooShortID", "https://www.youtube.com/watch?v=short", "", true},
		{"BareDomain", "https://www.youtube.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractVideoID(%q) = %q, want error", tt.url, got)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("ExtractVideoID(%q) error = %v, want ErrInvalidURL", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
