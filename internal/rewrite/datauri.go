package rewrite

import (
	"encoding/base64"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// DefaultMaxResourceSize bounds resources inlined as data URIs (20 MiB).
// Larger resources are treated as unresolvable.
const DefaultMaxResourceSize = 20 << 20

// Resolver turns resource URLs into data URIs or copies them to disk.
// It understands file: URLs for local files and qrc: URLs for packaged
// assets served from an fs.FS.
//
// Resolution never fails loudly: any unreadable, oversized or
// unrecognized resource yields an empty result and the caller leaves the
// reference as-is.
type Resolver struct {
	// Assets serves qrc: URLs. Nil disables the scheme.
	Assets fs.FS
	// MaxSize overrides DefaultMaxResourceSize when positive.
	MaxSize int64
	// Log records skipped resources for diagnosis. Nil is replaced with a
	// no-op logger.
	Log *zap.Logger
}

// NewResolver creates a Resolver with the given packaged-asset filesystem.
func NewResolver(assets fs.FS, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{Assets: assets, Log: log}
}

func (r *Resolver) maxSize() int64 {
	if r.MaxSize > 0 {
		return r.MaxSize
	}
	return DefaultMaxResourceSize
}

func (r *Resolver) logger() *zap.Logger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop()
}

// ToDataURI converts the resource behind u into a data:<mime>;base64,...
// string. fileOnly requires the target to be an existing local file,
// rejecting packaged assets. Returns empty on any failure.
func (r *Resolver) ToDataURI(u *url.URL, fileOnly bool) string {
	if u == nil {
		return ""
	}

	var data []byte
	var name string

	switch u.Scheme {
	case "file":
		p := localPath(u)
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			r.logger().Debug("resource not readable", zap.String("url", u.String()))
			return ""
		}
		if info.Size() > r.maxSize() {
			r.logger().Debug("resource too large", zap.String("url", u.String()), zap.Int64("size", info.Size()))
			return ""
		}
		data, err = os.ReadFile(p) // #nosec G304 -- resolved from the exported document
		if err != nil {
			return ""
		}
		name = p

	case "qrc":
		if fileOnly || r.Assets == nil {
			return ""
		}
		p := strings.TrimPrefix(u.Path, "/")
		var err error
		data, err = fs.ReadFile(r.Assets, p)
		if err != nil {
			r.logger().Debug("packaged resource not found", zap.String("url", u.String()))
			return ""
		}
		name = p

	default:
		return ""
	}

	mimeType := detectMime(name, data)
	if mimeType == "" {
		r.logger().Debug("unknown resource type", zap.String("url", u.String()))
		return ""
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// CopyResource copies the file behind u into folder, creating the folder as
// needed. Returns the target path, or empty on any failure. Only file: URLs
// can be copied.
func (r *Resolver) CopyResource(u *url.URL, folder string) string {
	if u == nil || u.Scheme != "file" {
		return ""
	}

	src := localPath(u)
	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		r.logger().Debug("resource not copyable", zap.String("url", u.String()))
		return ""
	}

	if err := os.MkdirAll(folder, 0o750); err != nil {
		r.logger().Warn("creating resource folder failed", zap.String("folder", folder), zap.Error(err))
		return ""
	}

	target := filepath.Join(folder, filepath.Base(src))
	if err := fileutil.CopyFile(src, target); err != nil {
		r.logger().Warn("copying resource failed", zap.String("url", u.String()), zap.Error(err))
		return ""
	}
	return target
}

// localPath maps a file: URL to a filesystem path.
func localPath(u *url.URL) string {
	return filepath.FromSlash(u.Path)
}

// detectMime determines a resource's MIME type from its extension, falling
// back to content sniffing for unknown extensions.
func detectMime(name string, data []byte) string {
	if ext := path.Ext(filepath.ToSlash(name)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			// Strip optional parameters like "; charset=utf-8".
			if idx := strings.Index(byExt, ";"); idx != -1 {
				byExt = byExt[:idx]
			}
			return strings.TrimSpace(byExt)
		}
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}
