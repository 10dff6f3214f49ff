package recordstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/railstat/railstat/pkg/autotrain"
)

var (
	ErrRead  = errors.New("failed to read status table")
	ErrWrite = errors.New("failed to write status table")
)

// Store keeps the historical status table in a single CSV file. Every write
// rewrites the whole table through a temporary file in the same directory,
// so readers always observe either the old table or the new one
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns every record in table order. A store that has never been
// written to is an empty table, not an error
func (store *Store) Load() ([]autotrain.DelayRecord, error) {
	file, err := os.Open(store.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	records := []autotrain.DelayRecord{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return records, nil
}

// Upsert adds the record to the table, replacing any existing record for
// the same service date and train number in place so that repeated runs
// never reorder or duplicate rows
func (store *Store) Upsert(record autotrain.DelayRecord) error {
	records, err := store.Load()
	if err != nil {
		return err
	}

	replaced := false
	for index, existing := range records {
		if existing.Key() == record.Key() {
			records[index] = record
			replaced = true
			break
		}
	}

	if !replaced {
		records = append(records, record)
	}

	return store.replaceTable(records)
}

func (store *Store) replaceTable(records []autotrain.DelayRecord) error {
	directory := filepath.Dir(store.Path)
	os.MkdirAll(directory, os.ModePerm)

	file, err := os.CreateTemp(directory, ".status-*.csv")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	temporaryPath := file.Name()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		file.Close()
		os.Remove(temporaryPath)

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := os.Rename(temporaryPath, store.Path); err != nil {
		os.Remove(temporaryPath)

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}
