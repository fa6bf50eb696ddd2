package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const downloadAttempts = 3

// backoffUnit scales the wait between download attempts.
var backoffUnit = time.Second

var downloadClient = &http.Client{Timeout: 10 * time.Minute}

// errPermanent marks a download failure that another attempt cannot fix.
var errPermanent = errors.New("permanent")

// downloadFile fetches a remote word list into dest. The body is streamed to
// a temporary file next to dest and renamed into place, so dest never holds
// a truncated list. Server errors and dropped connections are retried; 4xx
// answers are not.
func downloadFile(ctx context.Context, url, dest string) error {
	var err error
	for attempt := 1; attempt <= downloadAttempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(1<<(attempt-1)) * backoffUnit
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		err = fetchOnce(ctx, url, dest)
		if err == nil || errors.Is(err, errPermanent) || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}

func fetchOnce(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errPermanent, err)
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: HTTP %d", errPermanent, resp.StatusCode)
	default:
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("%w: %v", errPermanent, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
