package spv

import (
	"encoding/binary"

	"github.com/gogpu/naga/spirv"
)

// MagicNumber is the SPIR-V container magic: the first 4 bytes of valid
// bytecode, read as a little-endian 32-bit integer.
const MagicNumber uint32 = spirv.MagicNumber

// validateMagic checks the 4-byte container framing of bytecode.
func validateMagic(b []byte, location string) error {
	if len(b) < 4 {
		return &InvalidFormatError{
			Location: location,
			Expected: MagicNumber,
			Size:     len(b),
		}
	}
	magic := binary.LittleEndian.Uint32(b)
	if magic != MagicNumber {
		return &InvalidFormatError{
			Location: location,
			Expected: MagicNumber,
			Actual:   magic,
			Size:     len(b),
		}
	}
	return nil
}

// LoadArtifact ingests pre-compiled SPIR-V from a file, bundled resource
// or remote reference without invoking the compiler. The bytecode must
// begin with [MagicNumber]; anything else, including input shorter than
// 4 bytes, fails with *InvalidFormatError. The stage is recorded on the
// artifact as given; loaded artifacts carry no source hash.
func LoadArtifact(ref SourceRef, stage Stage) (*Artifact, error) {
	if !stage.valid() {
		return nil, &InvalidOptionError{
			Option: "stage",
			Value:  stage.String(),
			Valid:  stageTags(Stages()),
		}
	}
	b, err := ref.ReadBytes()
	if err != nil {
		return nil, err
	}
	if err := validateMagic(b, ref.String()); err != nil {
		return nil, err
	}
	Logger().Debug("spv: loaded bytecode", "ref", ref.String(), "stage", stage.String(), "bytes", len(b))
	return &Artifact{
		Name:     ref.String(),
		Stage:    stage,
		Bytecode: b,
	}, nil
}
