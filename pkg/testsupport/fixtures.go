// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

// LoadFixture reads a fixture file verbatim.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MustReadFixture returns the fixture at path as a string, failing the test
// when it cannot be read.
func MustReadFixture(t testing.TB, path string) string {
	t.Helper()
	data, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
