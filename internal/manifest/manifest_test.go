package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "si.units.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeManifest(t, `
[units]
base = ["kg", "m", "s"]

[units.derived]
N = "kg m/s^2"
Hz = "1/s"

[[assert]]
equal = ["N/kg", "m/s^2"]
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(m.Base) != 3 {
		t.Errorf("Base = %v", m.Base)
	}
	// Derived declarations come out name-sorted for determinism.
	if len(m.Derived) != 2 || m.Derived[0].Name != "Hz" || m.Derived[1].Name != "N" {
		t.Errorf("Derived = %v", m.Derived)
	}
	if len(m.Asserts) != 1 || len(m.Asserts[0].Formulas) != 2 {
		t.Errorf("Asserts = %v", m.Asserts)
	}
}

func TestLoadMissingUnitsSection(t *testing.T) {
	path := writeManifest(t, `[other]`)
	_, err := Load(path)
	if !errors.Is(err, ErrUnitsSectionMissing) {
		t.Fatalf("err = %v, want ErrUnitsSectionMissing", err)
	}
}

func TestLoadEmptyUnits(t *testing.T) {
	path := writeManifest(t, `
[units]
base = []
`)
	_, err := Load(path)
	if !errors.Is(err, ErrNoUnits) {
		t.Fatalf("err = %v, want ErrNoUnits", err)
	}
}

func TestLoadAssertNeedsTwoFormulas(t *testing.T) {
	path := writeManifest(t, `
[units]
base = ["m"]

[[assert]]
equal = ["m"]
`)
	_, err := Load(path)
	if !errors.Is(err, ErrAssertTooFew) {
		t.Fatalf("err = %v, want ErrAssertTooFew", err)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeManifest(t, `[units`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
