package source

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"

	"github.com/goliatone/go-vdesc/internal/identity"
)

// ErrRecordEmpty reports a record file without a payload.
var ErrRecordEmpty = errors.New("source: record has no payload")

// Record is one vehicle description file: optional YAML front matter
// followed by the raw payload exactly as the catalog stores it.
type Record struct {
	ID        uuid.UUID
	Reference string
	Title     string
	Source    string
	Path      string
	Payload   string
	Meta      map[string]any
	Modified  time.Time
}

type recordEnvelope struct {
	ID        string         `yaml:"id"`
	Reference string         `yaml:"reference"`
	Title     string         `yaml:"title"`
	Source    string         `yaml:"source"`
	Custom    map[string]any `yaml:",inline"`
}

// ParseRecord splits front matter from the payload. Records without front
// matter are accepted; their identity comes from the file name.
func ParseRecord(path string, data []byte) (*Record, error) {
	var meta recordEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("source: parse front matter %s: %w", path, err)
	}

	payload := strings.TrimSpace(string(body))
	if payload == "" {
		return nil, fmt.Errorf("%w: %s", ErrRecordEmpty, path)
	}

	reference := strings.TrimSpace(meta.Reference)
	if reference == "" {
		base := filepath.Base(path)
		reference = strings.TrimSuffix(base, filepath.Ext(base))
	}

	record := &Record{
		ID:        resolveID(meta.ID, reference),
		Reference: reference,
		Title:     strings.TrimSpace(meta.Title),
		Source:    strings.TrimSpace(meta.Source),
		Path:      path,
		Payload:   payload,
		Meta:      cloneMap(meta.Custom),
	}
	if record.Source == "" {
		record.Source = path
	}
	return record, nil
}

// resolveID accepts literal UUIDs and hashes anything else.
func resolveID(raw, reference string) uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
		return identity.VehicleUUID(raw)
	}
	return identity.VehicleUUID(reference)
}

func cloneMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
