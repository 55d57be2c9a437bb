package spv

// Artifact is a compiled shader: SPIR-V bytecode in native byte order
// together with the stage it was built for and the content hash of the
// source it came from. Artifacts are created by [CompileShader] or
// [LoadArtifact] and are immutable thereafter.
type Artifact struct {
	// Name is a display label used in diagnostics and cache listings.
	Name string

	// Stage is the pipeline stage the bytecode targets.
	Stage Stage

	// Bytecode is the SPIR-V binary. Little-endian 32-bit words.
	Bytecode []byte

	// SourceHash is the 64-character lowercase hex identity of the
	// source text, as computed by [HashSource]. Empty for artifacts
	// loaded from pre-compiled bytecode.
	SourceHash string
}

// Words returns the bytecode as 32-bit words, the form shader module
// creation consumes. Trailing bytes that do not fill a word are dropped.
func (a *Artifact) Words() []uint32 {
	words := make([]uint32, len(a.Bytecode)/4)
	for i := range words {
		words[i] = uint32(a.Bytecode[i*4]) |
			uint32(a.Bytecode[i*4+1])<<8 |
			uint32(a.Bytecode[i*4+2])<<16 |
			uint32(a.Bytecode[i*4+3])<<24
	}
	return words
}

// Validate checks the bytecode container framing: the leading 4 bytes must
// decode to the SPIR-V magic number. Returns *InvalidFormatError on
// violation. No further framing is validated; the full container format is
// owned by the SPIR-V ecosystem.
func (a *Artifact) Validate() error {
	return validateMagic(a.Bytecode, a.Name)
}
