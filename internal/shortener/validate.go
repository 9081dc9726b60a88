package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength bounds accepted long URLs.
const MaxURLLength = 2048

// ValidateURL checks that rawURL is an absolute http(s) URL with a host and
// returns it with scheme and host lowercased and default ports removed.
// Path, query and fragment are kept as given. The length limit applies to
// both the input and the escaped result.
func ValidateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	if len(rawURL) > MaxURLLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidURL, MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	u.Host = strings.ToLower(u.Host)

	// Remove default ports
	if strings.HasSuffix(u.Host, ":80") && u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else if strings.HasSuffix(u.Host, ":443") && u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	normalized := u.String()
	if len(normalized) > MaxURLLength {
		return "", fmt.Errorf("%w: longer than %d characters once escaped", ErrInvalidURL, MaxURLLength)
	}

	return normalized, nil
}
