package ai

import (
	"errors"
	"strings"
)

var (
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// DescribeError simplifies verbose transport errors into short readable
// categories for the status line.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoAPIKey) {
		return "No API key configured"
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "status 401"), strings.Contains(lower, "status 403"):
		return "Authentication failed"
	case strings.Contains(lower, "status 429"):
		return "Rate limited"
	default:
		return err.Error()
	}
}
