package spv

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
)

// SourceRef is a reference to shader source: inline text, a filesystem
// path, a bundled resource path, or a remote URL. The zero value is an
// empty inline reference.
//
// SourceRef is a closed tagged union: every kind has exactly one
// resolution rule, so resolution is total and exhaustively testable.
type SourceRef struct {
	kind  sourceKind
	value string
}

type sourceKind uint8

const (
	sourceInline sourceKind = iota
	sourceFile
	sourceAsset
	sourceRemote
	sourceAuto
)

// InlineSource references shader source given directly as text.
func InlineSource(text string) SourceRef { return SourceRef{sourceInline, text} }

// FileSource references shader source in a file on disk.
func FileSource(path string) SourceRef { return SourceRef{sourceFile, path} }

// AssetSource references shader source bundled with the application,
// resolved against the filesystem registered with [SetResourceFS].
func AssetSource(path string) SourceRef { return SourceRef{sourceAsset, path} }

// RemoteSource references shader source behind an http or https URL.
func RemoteSource(url string) SourceRef { return SourceRef{sourceRemote, url} }

// AutoSource coerces a plain string into a source reference. Text
// containing a line break is inline source verbatim. A single line is
// first tried as a bundled resource, then as a file path; if neither
// resolves, the string itself is treated as literal one-line source, so
// short inline snippets pass through without an explicit marker.
func AutoSource(s string) SourceRef { return SourceRef{sourceAuto, s} }

// String describes the reference for logs and error messages.
func (r SourceRef) String() string {
	switch r.kind {
	case sourceFile:
		return "file:" + r.value
	case sourceAsset:
		return "asset:" + r.value
	case sourceRemote:
		return r.value
	case sourceAuto:
		if strings.ContainsRune(r.value, '\n') {
			return "inline"
		}
		return r.value
	default:
		return "inline"
	}
}

// Resource filesystem and HTTP client are process-wide collaborators,
// guarded for concurrent registration the same way the package logger is.
var (
	collabMu   sync.RWMutex
	resourceFS fs.FS
	httpClient *http.Client = http.DefaultClient
)

// SetResourceFS registers the filesystem that AssetSource references
// resolve against, typically an embed.FS rooted at the application's
// shader directory. Pass nil to unregister.
func SetResourceFS(fsys fs.FS) {
	collabMu.Lock()
	resourceFS = fsys
	collabMu.Unlock()
}

// SetHTTPClient replaces the HTTP client used for RemoteSource references.
// Pass nil to restore http.DefaultClient.
func SetHTTPClient(c *http.Client) {
	if c == nil {
		c = http.DefaultClient
	}
	collabMu.Lock()
	httpClient = c
	collabMu.Unlock()
}

func currentResourceFS() fs.FS {
	collabMu.RLock()
	defer collabMu.RUnlock()
	return resourceFS
}

func currentHTTPClient() *http.Client {
	collabMu.RLock()
	defer collabMu.RUnlock()
	return httpClient
}

// Resolve normalizes the reference into source text.
// Missing files, assets and unreachable URLs return *SourceNotFoundError.
func (r SourceRef) Resolve() (string, error) {
	switch r.kind {
	case sourceInline:
		return r.value, nil
	case sourceFile, sourceAsset, sourceRemote:
		b, err := r.ReadBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case sourceAuto:
		return r.resolveAuto()
	}
	return "", fmt.Errorf("spv: unknown source kind %d", r.kind)
}

// resolveAuto implements the coercion order for AutoSource references.
func (r SourceRef) resolveAuto() (string, error) {
	if strings.ContainsRune(r.value, '\n') {
		return r.value, nil
	}
	if fsys := currentResourceFS(); fsys != nil {
		if b, err := fs.ReadFile(fsys, r.value); err == nil {
			return string(b), nil
		}
	}
	if b, err := os.ReadFile(r.value); err == nil {
		return string(b), nil
	}
	// Degenerate one-line shader: the string itself is the source.
	return r.value, nil
}

// ReadBytes reads the raw bytes behind the reference without interpreting
// them as text. Inline references yield their text bytes. Auto references
// try bundled resource then file, and fail with *SourceNotFoundError when
// neither resolves: there is no literal fallback for byte content.
func (r SourceRef) ReadBytes() ([]byte, error) {
	switch r.kind {
	case sourceInline:
		return []byte(r.value), nil
	case sourceFile:
		b, err := os.ReadFile(r.value)
		if err != nil {
			return nil, &SourceNotFoundError{Ref: r.value, Attempted: []string{"file:" + r.value}}
		}
		return b, nil
	case sourceAsset:
		fsys := currentResourceFS()
		if fsys == nil {
			return nil, &SourceNotFoundError{Ref: r.value, Attempted: []string{"asset:" + r.value + " (no resource FS registered)"}}
		}
		b, err := fs.ReadFile(fsys, r.value)
		if err != nil {
			return nil, &SourceNotFoundError{Ref: r.value, Attempted: []string{"asset:" + r.value}}
		}
		return b, nil
	case sourceRemote:
		return r.readRemote()
	case sourceAuto:
		attempted := make([]string, 0, 2)
		if fsys := currentResourceFS(); fsys != nil {
			if b, err := fs.ReadFile(fsys, r.value); err == nil {
				return b, nil
			}
			attempted = append(attempted, "asset:"+r.value)
		}
		if b, err := os.ReadFile(r.value); err == nil {
			return b, nil
		}
		attempted = append(attempted, "file:"+r.value)
		return nil, &SourceNotFoundError{Ref: r.value, Attempted: attempted}
	}
	return nil, fmt.Errorf("spv: unknown source kind %d", r.kind)
}

func (r SourceRef) readRemote() ([]byte, error) {
	resp, err := currentHTTPClient().Get(r.value)
	if err != nil {
		return nil, &SourceNotFoundError{Ref: r.value, Attempted: []string{r.value}}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &SourceNotFoundError{
			Ref:       r.value,
			Attempted: []string{fmt.Sprintf("%s (status %d)", r.value, resp.StatusCode)},
		}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceNotFoundError{Ref: r.value, Attempted: []string{r.value}}
	}
	return b, nil
}
