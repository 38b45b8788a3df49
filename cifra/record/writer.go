package record

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// FileTimeLayout is the timestamp embedded in record file names.
	FileTimeLayout = "20060102_150405"

	textExt = ".txt"
	lz4Ext  = ".lz4"

	maxCollisions = 1000
)

// Writer stores records as files under Dir.
type Writer struct {
	Dir      string
	Compress bool

	mu sync.Mutex
}

// NewWriter returns a Writer for dir, creating the directory if needed.
func NewWriter(dir string, compress bool) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Writer{Dir: dir, Compress: compress}, nil
}

// Write stores r as <kind>_<YYYYmmdd_HHMMSS>.txt (plus .lz4 when compressing)
// and returns the path. Records landing in the same second get a _N suffix;
// an existing file is never overwritten.
func (w *Writer) Write(r Record) (string, error) {
	data := r.Encode()
	ext := textExt
	if w.Compress {
		var err error
		if data, err = Compress(data); err != nil {
			return "", err
		}
		ext += lz4Ext
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	base := fmt.Sprintf("%s_%s", r.Kind, r.Time.Format(FileTimeLayout))
	for i := 0; i < maxCollisions; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		path := filepath.Join(w.Dir, name+ext)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("record: too many records named %s", base)
}

// ReadFile returns the text of a record file, decompressing .lz4 files.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, lz4Ext) {
		return Decompress(data)
	}
	return data, nil
}
