package filelist

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/domain/types"
	"github.com/leengari/relalg/internal/storage/codec"
)

// ===========================================================================
// SPILL FILE FORMAT
// ===========================================================================
//
// ┌──────────────────────────────────────────────────────────────┐
// │ Page 1: [Header (8 bytes)] [Payload (Length bytes)]          │
// ├──────────────────────────────────────────────────────────────┤
// │ Page 2: ...                                                  │
// └──────────────────────────────────────────────────────────────┘
//
// Header: Length uint32 | CRC32 of payload uint32, little-endian.
// Payload: PageRecords packed records back to back, zstd-compressed
// when compression is on. Only full pages are written; the last,
// partial page lives in memory.
//
// ===========================================================================

// ByteOrder is the byte order of page headers
var ByteOrder = binary.LittleEndian

// PageHeaderSize is the fixed size of a page header
const PageHeaderSize = 8

// DefaultPageRecords is the number of records per page when unset
const DefaultPageRecords = 128

// Config controls where and how pages are spilled
type Config struct {
	Dir         string // directory for spill files (os.TempDir() when empty)
	PageRecords int    // records per page
	Compress    bool   // zstd-compress spilled pages
}

type pageRef struct {
	offset int64
	length uint32
	crc    uint32
}

// List is an append-only, randomly indexable sequence of tuples whose
// full pages are packed with the record codec and written to a file
type List struct {
	mu          sync.Mutex
	path        string
	file        *os.File
	domains     []types.Domain
	recordSize  int
	pageRecords int

	pages []pageRef
	tail  []byte // packed records of the current, unwritten page
	size  int
	end   int64

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	cachedPage int
	cached     []byte
}

// Factory returns a StoreFactory creating file-backed lists
func Factory(cfg Config) schema.StoreFactory {
	return func(tableName string, domains []types.Domain) (schema.TupleStore, error) {
		return New(tableName, domains, cfg)
	}
}

// New creates an empty list backed by a fresh spill file
func New(tableName string, domains []types.Domain, cfg Config) (*List, error) {
	if cfg.PageRecords <= 0 {
		cfg.PageRecords = DefaultPageRecords
	}
	dir := cfg.Dir
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.tbl", tableName, uuid.NewString()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill file: %w", err)
	}

	l := &List{
		path:        path,
		file:        file,
		domains:     domains,
		recordSize:  codec.RecordSize(domains),
		pageRecords: cfg.PageRecords,
		cachedPage:  -1,
	}

	if cfg.Compress {
		if l.encoder, err = zstd.NewWriter(nil); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		if l.decoder, err = zstd.NewReader(nil); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
	}

	slog.Debug("file list created",
		slog.String("table", tableName),
		slog.String("path", path),
		slog.Int("record_size", l.recordSize),
		slog.Int("page_records", l.pageRecords),
		slog.Bool("compress", cfg.Compress),
	)
	return l, nil
}

// Append packs tup and adds it at the end of the list
func (l *List) Append(tup data.Tuple) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := codec.Pack(l.domains, tup)
	if err != nil {
		return err
	}

	l.tail = append(l.tail, record...)
	l.size++

	if len(l.tail) == l.pageRecords*l.recordSize {
		if err := l.flushPage(); err != nil {
			// keep the list consistent with what was acknowledged
			l.tail = l.tail[:len(l.tail)-l.recordSize]
			l.size--
			return err
		}
	}
	return nil
}

// Get returns the tuple at pos
func (l *List) Get(pos int) (data.Tuple, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pos < 0 || pos >= l.size {
		return nil, fmt.Errorf("tuple position %d out of range [0,%d)", pos, l.size)
	}

	page := pos / l.pageRecords
	slot := (pos % l.pageRecords) * l.recordSize

	var buf []byte
	if page == len(l.pages) {
		buf = l.tail
	} else {
		var err error
		if buf, err = l.readPage(page); err != nil {
			return nil, err
		}
	}
	return codec.Unpack(l.domains, buf[slot:slot+l.recordSize])
}

// Len returns the number of tuples
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Pages returns the number of pages written to the spill file
func (l *List) Pages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pages)
}

// Path returns the spill file path
func (l *List) Path() string {
	return l.path
}

// Close closes and removes the spill file
func (l *List) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.encoder != nil {
		l.encoder.Close()
		l.encoder = nil
	}
	if l.decoder != nil {
		l.decoder.Close()
		l.decoder = nil
	}
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil
	if rmErr := os.Remove(l.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

// flushPage writes the full tail page to the end of the file
func (l *List) flushPage() error {
	payload := l.tail
	if l.encoder != nil {
		payload = l.encoder.EncodeAll(l.tail, nil)
	}

	ref := pageRef{
		offset: l.end,
		length: uint32(len(payload)),
		crc:    crc32.ChecksumIEEE(payload),
	}

	buf := make([]byte, PageHeaderSize+len(payload))
	ByteOrder.PutUint32(buf[0:4], ref.length)
	ByteOrder.PutUint32(buf[4:8], ref.crc)
	copy(buf[PageHeaderSize:], payload)

	n, err := l.file.WriteAt(buf, l.end)
	if err != nil {
		return fmt.Errorf("failed to write page %d: %w", len(l.pages), err)
	}
	if n != len(buf) {
		return fmt.Errorf("incomplete page write: wrote %d of %d bytes", n, len(buf))
	}

	l.end += int64(n)
	l.pages = append(l.pages, ref)
	l.tail = make([]byte, 0, l.pageRecords*l.recordSize)
	return nil
}

// readPage loads and verifies a spilled page, keeping the last one cached
func (l *List) readPage(page int) ([]byte, error) {
	if page == l.cachedPage {
		return l.cached, nil
	}

	ref := l.pages[page]
	buf := make([]byte, PageHeaderSize+int(ref.length))
	if _, err := l.file.ReadAt(buf, ref.offset); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read page %d: %w", page, err)
	}

	length := ByteOrder.Uint32(buf[0:4])
	crc := ByteOrder.Uint32(buf[4:8])
	payload := buf[PageHeaderSize:]
	if length != ref.length || crc != crc32.ChecksumIEEE(payload) {
		return nil, fmt.Errorf("page %d is corrupt: checksum mismatch", page)
	}

	if l.decoder != nil {
		var err error
		if payload, err = l.decoder.DecodeAll(payload, nil); err != nil {
			return nil, fmt.Errorf("failed to decompress page %d: %w", page, err)
		}
	}
	if len(payload) != l.pageRecords*l.recordSize {
		return nil, fmt.Errorf("page %d has %d bytes, expected %d", page, len(payload), l.pageRecords*l.recordSize)
	}

	l.cachedPage = page
	l.cached = payload
	return payload, nil
}
