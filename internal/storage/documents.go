package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidPath      = errors.New("invalid document path")
)

// DocumentStore keeps uploaded documents under generated, write-once keys.
// Keys are slash separated and relative to the root of fs.
type DocumentStore struct {
	fs afero.Fs
}

func NewDocumentStore(fs afero.Fs) *DocumentStore {
	return &DocumentStore{
		fs: fs,
	}
}

// NewDiskDocumentStore roots the store at dir on the local disk.
func NewDiskDocumentStore(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return NewDocumentStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// Put writes r to a new key under dir and returns the key.
func (s *DocumentStore) Put(_ context.Context, dir, ext string, r io.Reader) (string, error) {
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("s.fs.MkdirAll -> %w", err)
	}

	key := path.Join(dir, uuid.NewString()+normalizeExt(ext))

	f, err := s.fs.OpenFile(key, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("s.fs.OpenFile -> %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(key)
		return "", fmt.Errorf("f.Close -> %w", err)
	}

	return key, nil
}

func (s *DocumentStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidPath
	}

	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("s.fs.Open -> %w", err)
	}

	return f, nil
}

// Delete removes the document. A key that does not exist is not an error.
func (s *DocumentStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidPath
	}

	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("s.fs.Remove -> %w", err)
	}

	return nil
}

func (s *DocumentStore) Exists(_ context.Context, key string) (bool, error) {
	if !validKey(key) {
		return false, ErrInvalidPath
	}

	return afero.Exists(s.fs, key)
}

// Sniff builds a Document from raw upload bytes. The content type and the
// extension come from the bytes themselves, not from the client.
func Sniff(filename string, data []byte) domain.Document {
	mtype := mimetype.Detect(data)

	return domain.Document{
		Filename:    filename,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
		Data:        data,
	}
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}

	return "." + ext
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}

	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return false
		}
	}

	return true
}
