package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/globalsolutions/website/backend/internal/content"
)

// FileRepo stores one pretty-printed JSON file per section at <dir>/<key>.json.
// Writes go to a temp file in the same directory and are renamed over the
// target, so a crash mid-write leaves the previous content in place.
type FileRepo struct {
	dir string
}

func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

// Path returns the file backing key.
func (f *FileRepo) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid section key %q", key)
	}
	return nil
}

func (f *FileRepo) Get(_ context.Context, key string) (*content.Document, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	p := f.Path(key)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%s: file does not contain valid JSON", p)
	}
	doc := &content.Document{Key: key, Payload: b}
	if st, err := os.Stat(p); err == nil {
		doc.UpdatedAt = st.ModTime().UTC()
	}
	return doc, nil
}

func (f *FileRepo) Put(_ context.Context, doc *content.Document) error {
	if err := checkKey(doc.Key); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc.Payload, "", "  "); err != nil {
		return fmt.Errorf("encode %s: %w", doc.Key, err)
	}
	buf.WriteByte('\n')

	tmp, err := os.CreateTemp(f.dir, "."+doc.Key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, f.Path(doc.Key)); err != nil {
		cleanup()
		return err
	}
	return nil
}
