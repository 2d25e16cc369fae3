package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestVehicleUUIDIsStable(t *testing.T) {
	first := VehicleUUID("ONX-2024-001")
	second := VehicleUUID("  onx-2024-001 ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected case and whitespace insensitive ids, got %s and %s", first, second)
	}
	if other := VehicleUUID("ONX-2024-002"); other == first {
		t.Fatalf("expected distinct ids for distinct references")
	}
}

func TestVehicleUUIDBlank(t *testing.T) {
	if id := VehicleUUID("   "); id != uuid.Nil {
		t.Fatalf("expected nil uuid for blank reference, got %s", id)
	}
}

func TestRecordUUIDIgnoresDirectoryAndExtension(t *testing.T) {
	a := RecordUUID("/var/data/onix-plus.txt")
	b := RecordUUID("fixtures/onix-plus.md")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected matching ids, got %s and %s", a, b)
	}
	if a != VehicleUUID("onix-plus") {
		t.Fatalf("expected record id to match vehicle reference id")
	}
}

func TestUUIDNamespacesDoNotCollide(t *testing.T) {
	if UUID("onix") == VehicleUUID("onix") {
		t.Fatalf("expected vehicle namespace to change the id")
	}
}
