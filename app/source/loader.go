package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/boostaproject/bap-api/app/importer"
)

var ErrNoFiles = errors.New("no importable files found")

// FileResult reports how many records one file contributed, or why it
// contributed none.
type FileResult struct {
	Path  string
	Count int
	Err   error
}

// Batch is the concatenation of every readable file, in file name order.
type Batch struct {
	Records []importer.Record
	Files   []FileResult
}

func (b *Batch) Failed() []FileResult {
	var failed []FileResult
	for _, f := range b.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

type Loader struct {
	feedParser *gofeed.Parser
}

func NewLoader() *Loader {
	return &Loader{
		feedParser: gofeed.NewParser(),
	}
}

// Load reads a single file, or every supported file directly inside a
// directory. A file that cannot be decoded is recorded in the batch and
// does not stop the others.
func (l *Loader) Load(path string) (*Batch, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !Supported(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, path)
	}

	batch := &Batch{}
	for _, file := range files {
		records, err := l.LoadFile(file)
		if err != nil {
			slog.Warn("Failed to load import file", "file", file, "error", err)
			batch.Files = append(batch.Files, FileResult{Path: file, Err: err})
			continue
		}
		batch.Records = append(batch.Records, records...)
		batch.Files = append(batch.Files, FileResult{Path: file, Count: len(records)})
	}

	return batch, nil
}

// Supported reports whether the file extension has a decoder.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".xml", ".rss", ".atom", ".html", ".htm":
		return true
	}
	return false
}

// LoadFile decodes one file into records according to its extension.
func (l *Loader) LoadFile(path string) ([]importer.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return toRecords(doc)
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return toRecords(doc)
	case ".xml", ".rss", ".atom":
		return l.parseFeed(data)
	case ".html", ".htm":
		return parseHTML(path, data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// toRecords accepts either a single object or an array of objects.
func toRecords(doc any) ([]importer.Record, error) {
	switch v := doc.(type) {
	case map[string]any:
		return []importer.Record{v}, nil
	case []any:
		records := make([]importer.Record, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}
			records = append(records, obj)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("expected an object or an array of objects, got %T", doc)
	}
}
