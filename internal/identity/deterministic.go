package identity

import (
	"path/filepath"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are prefixed per entity type so equal names never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// VehicleUUID identifies a vehicle record by its external reference, such as
// a stock number or the source file name.
func VehicleUUID(reference string) uuid.UUID {
	ref := strings.ToLower(strings.TrimSpace(reference))
	if ref == "" {
		return uuid.Nil
	}
	return UUID("go-vdesc:vehicle:" + ref)
}

// RecordUUID identifies a record file independent of the directory it was
// loaded from.
func RecordUUID(path string) uuid.UUID {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == string(filepath.Separator) {
		return uuid.Nil
	}
	return VehicleUUID(strings.TrimSuffix(base, filepath.Ext(base)))
}
