package spv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// spvFixture writes bytecode bytes to a temp file and returns its path.
func spvFixture(t *testing.T, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.spv")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// magicLE is the SPIR-V magic in its little-endian byte serialization.
var magicLE = []byte{0x03, 0x02, 0x23, 0x07}

func TestLoadArtifactValid(t *testing.T) {
	// Magic followed by arbitrary bytes must load.
	content := append(append([]byte{}, magicLE...), 0xde, 0xad, 0xbe, 0xef)
	path := spvFixture(t, content)

	art, err := LoadArtifact(FileSource(path), StageFragment)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if art.Stage != StageFragment {
		t.Errorf("Stage = %v, want fragment", art.Stage)
	}
	if len(art.Bytecode) != len(content) {
		t.Errorf("Bytecode length = %d, want %d", len(art.Bytecode), len(content))
	}
	if art.SourceHash != "" {
		t.Errorf("loaded artifact carries a source hash: %q", art.SourceHash)
	}
	if words := art.Words(); words[0] != MagicNumber {
		t.Errorf("Words()[0] = 0x%08x, want 0x%08x", words[0], MagicNumber)
	}
}

func TestLoadArtifactShortInput(t *testing.T) {
	path := spvFixture(t, magicLE[:3])

	_, err := LoadArtifact(FileSource(path), StageCompute)
	var f *InvalidFormatError
	if !errors.As(err, &f) {
		t.Fatalf("error = %v, want *InvalidFormatError", err)
	}
	if f.Size != 3 {
		t.Errorf("Size = %d, want 3", f.Size)
	}
	if f.Expected != MagicNumber {
		t.Errorf("Expected = 0x%08x, want 0x%08x", f.Expected, MagicNumber)
	}
}

func TestLoadArtifactWrongMagic(t *testing.T) {
	// Big-endian serialization of the magic is a framing error.
	path := spvFixture(t, []byte{0x07, 0x23, 0x02, 0x03})

	_, err := LoadArtifact(FileSource(path), StageCompute)
	var f *InvalidFormatError
	if !errors.As(err, &f) {
		t.Fatalf("error = %v, want *InvalidFormatError", err)
	}
	if f.Expected != MagicNumber {
		t.Errorf("Expected = 0x%08x, want 0x%08x", f.Expected, MagicNumber)
	}
	if f.Actual != 0x03022307 {
		t.Errorf("Actual = 0x%08x, want 0x03022307", f.Actual)
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	_, err := LoadArtifact(FileSource(filepath.Join(t.TempDir(), "nope.spv")), StageCompute)
	var nf *SourceNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *SourceNotFoundError", err)
	}
}

func TestLoadArtifactInvalidStage(t *testing.T) {
	path := spvFixture(t, magicLE)
	_, err := LoadArtifact(FileSource(path), Stage(42))
	var optErr *InvalidOptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("error = %v, want *InvalidOptionError", err)
	}
	if optErr.Option != "stage" {
		t.Errorf("Option = %q, want \"stage\"", optErr.Option)
	}
}

func TestArtifactValidate(t *testing.T) {
	good := &Artifact{Name: "good", Bytecode: append(append([]byte{}, magicLE...), 0, 0, 0, 0)}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate on valid bytecode: %v", err)
	}

	bad := &Artifact{Name: "bad", Bytecode: []byte{1, 2, 3, 4}}
	var f *InvalidFormatError
	if err := bad.Validate(); !errors.As(err, &f) {
		t.Errorf("Validate on bad magic = %v, want *InvalidFormatError", err)
	}
}
