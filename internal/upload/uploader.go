package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/wizard"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files uploaded at once.
const DefaultConcurrency = 4

// ErrUnsupportedType is returned for files that are not images.
var ErrUnsupportedType = errors.New("unsupported image type")

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true,
}

// Progress reports the state of one file of a batch.
type Progress struct {
	Index   int    // Position of the file in the batch
	Path    string // Local path
	Written int64
	Total   int64
	Done    bool
	Err     error
}

// Uploader uploads batches of local images to a Bucket.
type Uploader struct {
	bucket      Bucket
	disabler    *wizard.Disabler
	concurrency int
}

// NewUploader creates an Uploader. While a batch runs it holds disabler so
// the wizard cannot navigate away. disabler may be nil.
func NewUploader(bucket Bucket, disabler *wizard.Disabler, concurrency int) *Uploader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Uploader{bucket: bucket, disabler: disabler, concurrency: concurrency}
}

// Upload uploads paths and returns the URL of each file, index aligned with
// paths. Failed files leave an empty URL and their errors are joined into the
// returned error. onProgress may be called concurrently and may be nil.
func (u *Uploader) Upload(ctx context.Context, paths []string, onProgress func(Progress)) ([]string, error) {
	urls := make([]string, len(paths))
	if len(paths) == 0 {
		return urls, nil
	}

	if u.disabler != nil {
		release := u.disabler.Raise()
		defer release()
	}

	var (
		mu   sync.Mutex
		errs = make([]error, len(paths))
	)
	report := func(p Progress) {
		if onProgress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onProgress(p)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			url, err := u.uploadOne(gctx, i, p, report)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", filepath.Base(p), err)
				logger.Warn("Upload of %s failed: %v", p, err)
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	_ = g.Wait()

	return urls, errors.Join(errs...)
}

func (u *Uploader) uploadOne(ctx context.Context, index int, path string, report func(Progress)) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		err := fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
		report(Progress{Index: index, Path: path, Done: true, Err: err})
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		report(Progress{Index: index, Path: path, Done: true, Err: err})
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		report(Progress{Index: index, Path: path, Done: true, Err: err})
		return "", err
	}
	total := info.Size()

	url, err := u.bucket.Put(ctx, ObjectName(path), f, total, func(written int64) {
		report(Progress{Index: index, Path: path, Written: written, Total: total})
	})
	done := Progress{Index: index, Path: path, Total: total, Done: true, Err: err}
	if err == nil {
		done.Written = total
	}
	report(done)
	return url, err
}

// ObjectName returns a collision free bucket name for a local file.
func ObjectName(path string) string {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "image"
	}
	return name + "-" + uuid.NewString()[:8] + ext
}
