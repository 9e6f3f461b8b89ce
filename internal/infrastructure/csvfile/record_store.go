package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

// RecordStore は 1 つの CSV ファイルへレコードを追記する単一ライターのストア。
// 追記はすべて mu で直列化され、ヘッダー行はファイルが空のときに一度だけ書かれる。
type RecordStore struct {
	mu     sync.Mutex
	path   string
	header []string
	logger *log.Logger
	open   func(path string) (appendFile, error)
}

// appendFile is the subset of *os.File an append needs.
type appendFile interface {
	io.Writer
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
	Close() error
}

func openAppend(path string) (appendFile, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
}

// New resolves path, creates its directory and returns the store. The file
// itself is created on the first append.
func New(path string, logger *log.Logger) (*RecordStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve csv path %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create csv directory: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RecordStore{
		path:   abs,
		header: domain.Header(),
		logger: logger,
		open:   openAppend,
	}, nil
}

// Location returns the absolute CSV path.
func (s *RecordStore) Location() string {
	return s.path
}

// Append writes record as one row. The row (plus the header on an empty
// file) goes out in a single write; on failure the file is cut back to its
// previous size so no partial row remains.
func (s *RecordStore) Append(_ context.Context, record domain.Record) error {
	values := record.Values()
	if len(values) != len(s.header) {
		panic(fmt.Sprintf("csvfile: record has %d values, header has %d columns", len(values), len(s.header)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendLocked(values); err != nil {
		return &domain.StoreError{Location: s.path, Err: err}
	}
	return nil
}

func (s *RecordStore) appendLocked(values []string) error {
	file, err := s.open(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	offset := info.Size()

	rows := [][]string{values}
	if offset == 0 {
		rows = [][]string{s.header, values}
	}
	payload, err := encodeRows(rows)
	if err != nil {
		return err
	}

	if _, err := file.Write(payload); err != nil {
		s.rollback(file, offset)
		return err
	}
	if err := file.Sync(); err != nil {
		s.rollback(file, offset)
		return err
	}
	return nil
}

func (s *RecordStore) rollback(file appendFile, offset int64) {
	if err := file.Truncate(offset); err != nil {
		s.logger.Printf("CSV の部分書き込みを巻き戻せませんでした: path=%s offset=%d err=%v", s.path, offset, err)
	}
}

// Close is a no-op; every append opens and closes the file itself.
func (s *RecordStore) Close(context.Context) error {
	return nil
}

func encodeRows(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
