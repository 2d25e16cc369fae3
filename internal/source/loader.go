package source

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LoaderConfig configures record discovery.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.txt").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader reads vehicle records from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.txt"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single record.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("source loader read %s: %w", name, err)
	}
	record, err := ParseRecord(name, data)
	if err != nil {
		return nil, err
	}
	if info, statErr := fs.Stat(l.fs, name); statErr == nil {
		record.Modified = info.ModTime()
	}
	return record, nil
}

// LoadAll returns every matching record ordered by path.
func (l *Loader) LoadAll(ctx context.Context) ([]*Record, error) {
	var names []string
	err := fs.WalkDir(l.fs, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if name != "." && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		matched, err := path.Match(l.pattern, path.Base(name))
		if err != nil {
			return fmt.Errorf("source loader pattern %q: %w", l.pattern, err)
		}
		if matched {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	records := make([]*Record, 0, len(names))
	for _, name := range names {
		record, err := l.LoadFile(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
