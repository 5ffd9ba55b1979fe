package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/simple-installer/internal/logger"
)

// Downloader streams remote artifacts to local files.
type Downloader struct {
	// client performs the HTTP requests.
	client *http.Client
	// injector may replace the rollback with a synthetic failure.
	injector FailureInjector
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// WithFailureInjector installs a FailureInjector.
func WithFailureInjector(injector FailureInjector) Option {
	return func(d *Downloader) {
		if injector != nil {
			d.injector = injector
		}
	}
}

// New returns a Downloader using http.DefaultClient and no failure injection.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		client:   http.DefaultClient,
		injector: NoFailure{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Download fetches url into dest. On success dest holds the artifact.
// On any failure dest is removed before the error is returned.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	dest = filepath.Clean(dest)

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return d.rollback(ctx, file, url, &TransportError{URL: url, Err: err})
	}

	response, err := d.client.Do(req)
	if err != nil {
		return d.rollback(ctx, file, url, &TransportError{URL: url, Err: err})
	}

	defer func() {
		_ = response.Body.Close()
	}()

	// Nothing is written for a bad status, so no partial body is ever visible.
	if response.StatusCode != http.StatusOK {
		return d.rollback(ctx, file, url, &TransportError{
			URL:        url,
			StatusCode: response.StatusCode,
			Status:     response.Status,
		})
	}

	written, err := io.Copy(file, response.Body)
	if err != nil {
		return d.rollback(ctx, file, url, &TransportError{
			URL:        url,
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Err:        err,
		})
	}

	if err = file.Close(); err != nil {
		return d.rollback(ctx, file, url, fmt.Errorf("close %s: %w", dest, err))
	}

	logger.DebugKV(ctx, "Downloaded artifact", "url", url, "path", dest, "bytes", written)

	return nil
}

// rollback deletes the destination and closes its handle concurrently,
// waits for both, then returns cause. Any rollback failure becomes a RollbackError.
// The handle may already be closed.
func (d *Downloader) rollback(ctx context.Context, file *os.File, url string, cause error) error {
	path := file.Name()

	logger.WarnKV(ctx, "Download failed, rolling back", "url", url, "path", path, "error", cause)

	if err := d.injector.RollbackFailure(path); err != nil {
		return &RollbackError{URL: url, Path: path, File: file, Cause: cause, Err: err}
	}

	var group errgroup.Group

	group.Go(func() error {
		return os.Remove(path)
	})

	group.Go(func() error {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			return err
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return &RollbackError{URL: url, Path: path, File: file, Cause: cause, Err: err}
	}

	return cause
}
