package spv

import (
	"slices"
	"strings"
)

// Toolchain produces per-call compiler sessions and option sets.
// A Toolchain itself must be safe for concurrent use; the sessions and
// option sets it hands out are not, so every compilation call acquires
// its own pair and releases both when done.
type Toolchain interface {
	// NewCompiler acquires a compiler session for one compilation call.
	NewCompiler() Compiler

	// NewOptions acquires an option set for one compilation call.
	NewOptions() Options

	// SupportedStages returns the stages this toolchain can compile.
	SupportedStages() []Stage
}

// Compiler is a scoped compiler session. Release must be called on every
// exit path once acquired, regardless of compilation outcome.
type Compiler interface {
	// Compile translates source text into SPIR-V bytecode for the given
	// stage. The filename is a display-only label for diagnostics.
	Compile(source, filename string, stage Stage, opts Options) (*CompileResult, error)

	// Release frees the session. The session must not be used afterwards.
	Release()
}

// Options is a scoped compiler option set, released independently of the
// compiler session that consumes it.
type Options interface {
	SetOptimization(level OptimizationLevel)
	SetTargetEnv(env TargetEnv)
	Release()
}

// CompileResult is the raw output of a compiler session.
type CompileResult struct {
	// Bytecode is the SPIR-V binary in native byte order.
	// Ownership transfers to the caller.
	Bytecode []byte

	// Warnings is the number of warnings the compiler emitted.
	Warnings int
}

// maxExcerptLines bounds the source excerpt carried by CompileError.
const maxExcerptLines = 30

// sourceExcerpt returns at most the first 30 lines of source, appending a
// truncation marker when the source is longer.
func sourceExcerpt(source string) string {
	lines := strings.Split(source, "\n")
	if len(lines) <= maxExcerptLines {
		return source
	}
	return strings.Join(lines[:maxExcerptLines], "\n") + "\n... (truncated)"
}

// CompileShader resolves a source reference and compiles it into a SPIR-V
// [Artifact] for the given stage.
//
// Option validation happens before any compiler work: a stage outside the
// toolchain's supported set, an unknown optimization level or an unknown
// target environment tag fails fast with *InvalidOptionError naming the
// offending value and the valid set. Unresolvable sources fail with
// *SourceNotFoundError and rejected source with *CompileError.
//
// The compiler session and its option set are acquired per call and
// released on every exit path, each independently of the other.
func CompileShader(name string, ref SourceRef, stage Stage, opts ...CompileOption) (*Artifact, error) {
	cfg := defaultCompileConfig()
	for _, o := range opts {
		o(&cfg)
	}
	tc := cfg.toolchain

	supported := tc.SupportedStages()
	if !stage.valid() || !slices.Contains(supported, stage) {
		return nil, &InvalidOptionError{
			Option: "stage",
			Value:  stage.String(),
			Valid:  stageTags(supported),
		}
	}
	if !cfg.optimize.valid() {
		return nil, &InvalidOptionError{
			Option: "optimize",
			Value:  cfg.optimize.String(),
			Valid:  optimizationTags(),
		}
	}
	if cfg.targetEnv != "" && !cfg.targetEnv.valid() {
		return nil, &InvalidOptionError{
			Option: "target-env",
			Value:  string(cfg.targetEnv),
			Valid:  targetEnvTags(),
		}
	}

	source, err := ref.Resolve()
	if err != nil {
		return nil, err
	}

	filename := cfg.filename
	if filename == "" {
		filename = name
	}

	compiler := tc.NewCompiler()
	defer compiler.Release()
	copts := tc.NewOptions()
	defer copts.Release()

	copts.SetOptimization(cfg.optimize)
	if cfg.targetEnv != "" {
		copts.SetTargetEnv(cfg.targetEnv)
	}

	result, err := compiler.Compile(source, filename, stage, copts)
	if err != nil {
		return nil, &CompileError{
			Stage:    stage,
			Message:  err.Error(),
			Errors:   compileErrorCount(err),
			Warnings: compileWarningCount(err),
			Excerpt:  sourceExcerpt(source),
		}
	}

	Logger().Debug("spv: compiled shader",
		"name", name, "stage", stage.String(), "bytes", len(result.Bytecode))

	return &Artifact{
		Name:       name,
		Stage:      stage,
		Bytecode:   result.Bytecode,
		SourceHash: HashSource(source),
	}, nil
}
