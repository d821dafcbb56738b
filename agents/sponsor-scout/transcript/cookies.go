package transcript

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// loadCookieFile parses a Netscape/Mozilla cookie-jar text export, the format
// produced by browser cookie-export extensions. Each cookie line has seven
// tab-separated fields: domain, include-subdomains flag, path, secure flag,
// expiry (unix seconds), name, value.
func loadCookieFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie file %s: %w", path, err)
	}
	defer f.Close()

	var cookies []*http.Cookie

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		// The #HttpOnly_ prefix is data, not a comment
		httpOnly := false
		if strings.HasPrefix(text, "#HttpOnly_") {
			httpOnly = true
			text = strings.TrimPrefix(text, "#HttpOnly_")
		} else if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("cookie file %s line %d: expected 7 tab-separated fields, got %d", path, line, len(fields))
		}

		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cookie file %s line %d: bad expiry %q: %w", path, line, fields[4], err)
		}

		cookie := &http.Cookie{
			Domain:   strings.TrimPrefix(fields[0], "."),
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if expiry > 0 {
			cookie.Expires = time.Unix(expiry, 0)
		}

		// Session cookies (expiry 0) are kept; expired ones are not
		if expiry > 0 && cookie.Expires.Before(time.Now()) {
			continue
		}

		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cookie file %s: %w", path, err)
	}

	if len(cookies) == 0 {
		return nil, fmt.Errorf("cookie file %s contains no usable cookies", path)
	}

	return cookies, nil
}
