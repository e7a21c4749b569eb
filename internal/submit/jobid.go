package submit

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrNoJobID is returned when no job identifier can be extracted.
var ErrNoJobID = errors.New("no job identifier found")

// ParseJobID returns the final path segment of a job status URL, e.g. "12345"
// for "https://ci.example.com/r/job/12345". Parsing the same input always
// yields the same identifier.
func ParseJobID(statusURL string) (string, error) {
	raw := strings.TrimSpace(statusURL)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a URL: %v", ErrNoJobID, raw, err)
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return "", fmt.Errorf("%w: %q has no path", ErrNoJobID, raw)
	}
	id := path.Base(p)
	if id == "" || id == "." || id == "/" {
		return "", fmt.Errorf("%w: %q has no final path segment", ErrNoJobID, raw)
	}
	return id, nil
}

// JobIDFromOutput scans submission tool output for the last http(s) URL and
// parses the job identifier from it.
func JobIDFromOutput(output string) (string, error) {
	fields := strings.Fields(output)
	for i := len(fields) - 1; i >= 0; i-- {
		f := fields[i]
		if strings.HasPrefix(f, "https://") || strings.HasPrefix(f, "http://") {
			return ParseJobID(f)
		}
	}
	return "", fmt.Errorf("%w: no status URL in submission output", ErrNoJobID)
}
