package blob

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"path"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/vidzel/vidzel/pkg/config"
)

// ErrNotFound is returned by Get for unknown keys
var ErrNotFound = errors.New("blob not found")

// Object is a stored upload
type Object struct {
	Data        []byte
	ContentType string
}

// Store persists uploaded files and hands out public URLs for them
type Store interface {
	// Backend names the implementation, e.g. "badger" or "s3"
	Backend() string
	// Put stores size bytes read from r
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	// URL returns the public address of a stored key
	URL(key string) string
	Close() error
}

// hashPrefixLen is the number of hex characters of the content hash kept in keys
const hashPrefixLen = 16

const maxNameLen = 128

// Key derives the storage key for an upload: a BLAKE3 content prefix
// followed by the sanitized file name. Identical content under the same
// name maps to the same key.
func Key(fileName string, data []byte) string {
	sum := blake3.Sum256(data)
	return KeyFromSum(fileName, sum[:])
}

// NewHasher returns the content hash behind Key, for callers that stream
// the upload instead of holding it in memory.
func NewHasher() hash.Hash {
	return blake3.New()
}

// KeyFromSum builds the key from a digest produced by NewHasher
func KeyFromSum(fileName string, sum []byte) string {
	return hex.EncodeToString(sum)[:hashPrefixLen] + "/" + SanitizeName(fileName)
}

// SanitizeName reduces a client supplied file name to a safe base name made
// of letters, digits, dot, dash and underscore.
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) > maxNameLen {
		out = out[len(out)-maxNameLen:]
	}
	// trim after cutting so the result is a fixed point for ValidKey
	out = strings.Trim(out, "._")
	if out == "" {
		return "file"
	}
	return out
}

// ValidKey reports whether key has the shape produced by Key
func ValidKey(key string) bool {
	prefix, name, ok := strings.Cut(key, "/")
	if !ok || len(prefix) != hashPrefixLen || name == "" {
		return false
	}
	if _, err := hex.DecodeString(prefix); err != nil {
		return false
	}
	return SanitizeName(name) == name
}

// Open builds the store selected by blob_backend
func Open(ctx context.Context, cfg *config.VidzelConfig) (Store, error) {
	switch cfg.BlobBackend {
	case "badger":
		return NewBadgerStore(BadgerOptions{
			Path:      cfg.BadgerPath,
			PublicURL: cfg.PublicURL,
		})
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			UsePathStyle:  cfg.S3UsePathStyle,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
