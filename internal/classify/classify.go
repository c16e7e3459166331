// Package classify decides whether a file holds text or binary content.
//
// The registered media type for the file extension is consulted first. Only
// when the extension is unknown are the leading bytes inspected.
package classify

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/consolidate/internal/diag"
)

// SniffLen is the number of leading bytes inspected for a null byte.
const SniffLen = 1024

// extMediaTypes covers common source and binary extensions so that their
// classification does not depend on the host's mime registry, which may lack
// them or map them to something unhelpful (".ts" is video/mp2t there).
var extMediaTypes = map[string]string{
	".txt": "text/plain", ".md": "text/markdown", ".markdown": "text/markdown",
	".go": "text/x-go", ".py": "text/x-python", ".rs": "text/x-rust",
	".ts": "text/typescript", ".tsx": "text/typescript-jsx", ".jsx": "text/javascript-jsx",
	".yaml": "text/yaml", ".yml": "text/yaml", ".toml": "text/toml",
	".sh": "text/x-shellscript", ".bash": "text/x-shellscript",
	".sql": "text/x-sql", ".rb": "text/x-ruby", ".java": "text/x-java",
	".kt": "text/x-kotlin", ".kts": "text/x-kotlin",
	".swift": "text/x-swift", ".vue": "text/x-vue", ".svelte": "text/x-svelte",
	".c": "text/x-c", ".h": "text/x-c", ".cpp": "text/x-c++", ".hpp": "text/x-c++",
	".ipynb": "application/x-ipynb+json",
	".json": "application/json", ".xml": "application/xml", ".js": "application/javascript",
	".html": "text/html", ".htm": "text/html", ".css": "text/css", ".csv": "text/csv",

	// common binary formats, so the host registry is not consulted for them
	".png": "image/png", ".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".gif": "image/gif",
	".webp": "image/webp", ".ico": "image/vnd.microsoft.icon", ".bmp": "image/bmp",
	".pdf": "application/pdf", ".zip": "application/zip", ".gz": "application/gzip",
	".tar": "application/x-tar", ".7z": "application/x-7z-compressed",
	".jar": "application/java-archive", ".class": "application/java-vm",
	".exe": "application/vnd.microsoft.portable-executable",
	".dll": "application/vnd.microsoft.portable-executable",
	".so": "application/octet-stream", ".o": "application/octet-stream",
	".a": "application/octet-stream", ".pyc": "application/octet-stream",
	".wasm": "application/wasm", ".woff": "font/woff", ".woff2": "font/woff2",
	".ttf": "font/ttf", ".mp3": "audio/mpeg", ".wav": "audio/wav",
	".mp4": "video/mp4", ".mov": "video/quicktime", ".sqlite": "application/vnd.sqlite3",
}

// textualApplicationTypes are application/* types whose content is text.
var textualApplicationTypes = map[string]bool{
	"application/json":       true,
	"application/xml":        true,
	"application/javascript": true,
	"application/x-sh":       true,
	"application/toml":       true,
	"application/yaml":       true,
	"application/x-yaml":     true,
}

// Classifier implements the text/binary decision. Failures to read a file are
// reported to Sink and treated as binary.
type Classifier struct {
	Sink   diag.Sink
	Logger diag.Logger
}

// New returns a Classifier reporting to sink.
func New(sink diag.Sink, logger diag.Logger) *Classifier {
	if sink == nil {
		sink = diag.NopSink{}
	}
	if logger == nil {
		logger = diag.NoopLogger{}
	}
	return &Classifier{Sink: sink, Logger: logger}
}

// MediaType returns the registered media type for path's extension without
// parameters, or "" when the extension is unknown.
func MediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if t, ok := extMediaTypes[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if idx := strings.Index(t, ";"); idx != -1 {
		t = strings.TrimSpace(t[:idx])
	}
	return t
}

// IsTextual reports whether a known media type describes text.
func IsTextual(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	if textualApplicationTypes[mediaType] {
		return true
	}
	return strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml")
}

// IsBinary reports whether path should be treated as binary content.
func (c *Classifier) IsBinary(path string) bool {
	if t := MediaType(path); t != "" {
		textual := IsTextual(t)
		c.Logger.Debug("classify: %s has media type %s (text: %v)", path, t, textual)
		return !textual
	}

	binary, err := sniff(path)
	if err != nil {
		c.Sink.Record(diag.Event{Kind: diag.ClassificationError, Path: path, Err: err})
		return true
	}
	return binary
}

// sniff reads up to SniffLen bytes and looks for a null byte.
func sniff(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, SniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) != -1, nil
}
