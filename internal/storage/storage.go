package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/Tiliavir/worklog/internal/model"
)

const separator = "|"

// syncFile flushes an appended record to disk. Tests replace it to simulate
// a failing device.
var syncFile = (*os.File).Sync

// Store reads and appends records in the pipe-delimited work log file.
// Every operation holds an advisory lock on <path>.lock for its duration.
type Store struct {
	path string
	loc  *time.Location
}

// New returns a Store for the log at path. Timestamps are interpreted in loc;
// a nil loc means time.Local.
func New(path string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{path: path, loc: loc}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Location returns the time zone records are read in.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) lock() *flock.Flock {
	return flock.New(s.path + ".lock")
}

// Load returns all records in file order. A missing log is empty.
func (s *Store) Load() ([]model.Record, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return []model.Record{}, nil
	}

	fl := s.lock()
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("storage error locking %s: %w", s.path, err)
	}
	defer fl.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := s.parse(f)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) parse(r io.Reader) ([]model.Record, error) {
	records := []model.Record{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := ParseLine(text, s.loc)
		if err != nil {
			return nil, &CorruptRecordError{Path: s.path, Line: line, Text: text, Reason: err.Error()}
		}
		rec.Line = line
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	return records, nil
}

// ParseLine decodes a single "YYYY-MM-DD|HH:MM:SS|kind" line.
func ParseLine(text string, loc *time.Location) (model.Record, error) {
	fields := strings.Split(text, separator)
	if len(fields) != 3 {
		return model.Record{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	ts, err := time.ParseInLocation(model.DateTimeLayout, fields[0]+" "+fields[1], loc)
	if err != nil {
		return model.Record{}, fmt.Errorf("unparsable timestamp: %w", err)
	}
	kind, err := model.ParseKind(fields[2])
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{Kind: kind, Timestamp: ts}, nil
}

// FormatLine encodes a record in the stored layout, without trailing newline.
func FormatLine(rec model.Record) string {
	return strings.Join([]string{
		rec.Timestamp.Format(model.DateLayout),
		rec.Timestamp.Format(model.TimeLayout),
		string(rec.Kind),
	}, separator)
}

// Append adds rec as the last line of the log. The write is all-or-nothing:
// on failure the file is truncated back to its previous size.
func (s *Store) Append(rec model.Record) (err error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &StoreWriteError{Path: s.path, Op: "creating directory for", Err: err}
	}

	fl := s.lock()
	if err := fl.Lock(); err != nil {
		return &StoreWriteError{Path: s.path, Op: "locking", Err: err}
	}
	defer func() {
		if uerr := fl.Unlock(); uerr != nil && err == nil {
			err = &StoreWriteError{Path: s.path, Op: "unlocking", Err: uerr}
		}
	}()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return &StoreWriteError{Path: s.path, Op: "opening", Err: err}
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return &StoreWriteError{Path: s.path, Op: "seeking", Err: err}
	}

	line := FormatLine(rec) + "\n"
	if size > 0 {
		// Manual edits may leave the last line unterminated.
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return &StoreWriteError{Path: s.path, Op: "reading", Err: err}
		}
		if last[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Truncate(size)
		return &StoreWriteError{Path: s.path, Op: "writing", Err: err}
	}
	if err := syncFile(f); err != nil {
		_ = f.Truncate(size)
		return &StoreWriteError{Path: s.path, Op: "syncing", Err: err}
	}
	return nil
}
