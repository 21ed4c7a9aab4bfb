// Package upload stores form images in a bucket and reports progress while
// the wizard navigation is held disabled.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Bucket stores uploaded objects.
type Bucket interface {
	// Put stores size bytes read from r under name and returns the public
	// URL of the object. progress is called with the number of bytes written
	// so far.
	Put(ctx context.Context, name string, r io.Reader, size int64, progress func(written int64)) (string, error)
}

// DirBucket is a Bucket writing objects to a local directory.
type DirBucket struct {
	Dir     string
	BaseURL string // Prefix of returned URLs; file:// URLs are returned when empty
}

// NewDirBucket creates a DirBucket.
func NewDirBucket(dir, baseURL string) *DirBucket {
	return &DirBucket{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (b *DirBucket) Put(ctx context.Context, name string, r io.Reader, size int64, progress func(int64)) (string, error) {
	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create bucket dir: %w", err)
	}

	dst := filepath.Join(b.Dir, filepath.Base(name))
	tmp, err := os.CreateTemp(b.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := &progressWriter{ctx: ctx, w: tmp, progress: progress}
	if _, err := io.Copy(w, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if size >= 0 && w.written != size {
		return "", fmt.Errorf("short write for %s: %d of %d bytes", name, w.written, size)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}

	if b.BaseURL == "" {
		abs, err := filepath.Abs(dst)
		if err != nil {
			return "", err
		}
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
	}
	return b.BaseURL + "/" + path.Base(filepath.ToSlash(dst)), nil
}

// progressWriter reports cumulative bytes and stops on context cancellation.
type progressWriter struct {
	ctx      context.Context
	w        io.Writer
	written  int64
	progress func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.progress != nil && n > 0 {
		p.progress(p.written)
	}
	return n, err
}
