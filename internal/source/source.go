// Package source opens schema documents by location. A location is either a
// filesystem path or an http(s) URL; import and include directives carry
// locations relative to the document that declares them. Remote documents
// can be cached on disk so repeated loads of a published schema work
// offline.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
)

// Opener fetches the content of one schema location.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Resolver opens schema documents from the local filesystem and, when a
// client is configured, over http(s). The zero value reads from the host
// filesystem without remote access.
type Resolver struct {
	// FS overrides the host filesystem for non-URL locations.
	FS fs.FS
	// Client enables http(s) locations. Nil rejects remote locations.
	Client *http.Client
	// CacheDir stores a copy of every downloaded document, keyed by URL.
	CacheDir string
}

// Open fetches the document at location.
func (r *Resolver) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsRemote(location) {
		return r.openRemote(ctx, location)
	}
	return r.openFile(location)
}

func (r *Resolver) openFile(location string) (io.ReadCloser, error) {
	var (
		f   fs.File
		err error
	)
	if r.FS != nil {
		f, err = r.FS.Open(location)
	} else {
		f, err = os.Open(location)
	}
	if err != nil {
		return nil, &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	return f, nil
}

func (r *Resolver) openRemote(ctx context.Context, location string) (io.ReadCloser, error) {
	if cached, ok := r.openCached(location); ok {
		return cached, nil
	}
	if r.Client == nil {
		return nil, &xsderrors.SourceUnavailable{
			Location: location,
			Err:      fmt.Errorf("remote locations disabled"),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &xsderrors.SourceUnavailable{
			Location: location,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if r.CacheDir == "" {
		return resp.Body, nil
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	if err := r.writeCache(location, body); err != nil {
		return nil, err
	}
	return r.mustOpenCached(location)
}

func (r *Resolver) openCached(location string) (io.ReadCloser, bool) {
	if r.CacheDir == "" {
		return nil, false
	}
	f, err := os.Open(r.cachePath(location))
	if err != nil {
		return nil, false
	}
	return f, true
}

func (r *Resolver) mustOpenCached(location string) (io.ReadCloser, error) {
	f, err := os.Open(r.cachePath(location))
	if err != nil {
		return nil, &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	return f, nil
}

func (r *Resolver) writeCache(location string, body []byte) error {
	if err := os.MkdirAll(r.CacheDir, 0o755); err != nil {
		return &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	if err := os.WriteFile(r.cachePath(location), body, 0o644); err != nil {
		return &xsderrors.SourceUnavailable{Location: location, Err: err}
	}
	return nil
}

// cachePath keys the cache by URL digest plus the document's base name, so
// the directory stays readable while distinct URLs never collide.
func (r *Resolver) cachePath(location string) string {
	sum := sha256.Sum256([]byte(location))
	name := path.Base(location)
	if name == "." || name == "/" {
		name = "schema.xsd"
	}
	return filepath.Join(r.CacheDir, hex.EncodeToString(sum[:8])+"-"+name)
}

// IsRemote reports whether a location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ResolveReference resolves a schemaLocation against the location of the
// document declaring it. Absolute locations pass through untouched.
func ResolveReference(base, ref string) string {
	if IsRemote(ref) {
		return ref
	}
	if IsRemote(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return ref
		}
		refURL, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return baseURL.ResolveReference(refURL).String()
	}
	if filepath.IsAbs(ref) || base == "" {
		return ref
	}
	return filepath.ToSlash(filepath.Join(filepath.Dir(base), ref))
}
