package showdown

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chenwei791129/pokehelper/pkg/pokeshowdown"
)

// Source returns the full battle log at url, one entry per line.
type Source interface {
	Lines(ctx context.Context, url string) ([]string, error)
}

// HTTPSource reads battle logs served as plain text.
type HTTPSource struct {
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource with the given request timeout.
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	return &HTTPSource{Client: &http.Client{Timeout: timeout}}
}

// LogURL returns the address of the raw log for a replay page.
// Other addresses are returned as is.
func LogURL(url string) string {
	if strings.HasPrefix(url, pokeshowdown.ReplayURLPrefix) && !strings.HasSuffix(url, ".log") {
		return strings.TrimSuffix(url, "/") + ".log"
	}
	return url
}

// Lines implements Source.
func (s *HTTPSource) Lines(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, LogURL(url), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch battle log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch battle log: unexpected status %s", resp.Status)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read battle log: %w", err)
	}
	return lines, nil
}
