package spv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/naga/wgsl"
)

// nagaToolchain compiles WGSL through the Pure Go gogpu/naga compiler.
// It is stateless: sessions and option sets carry all per-call state.
type nagaToolchain struct{}

// NagaToolchain returns the default WGSL toolchain backed by gogpu/naga.
func NagaToolchain() Toolchain { return nagaToolchain{} }

// SupportedStages returns the WGSL stage set. WGSL has no geometry or
// tessellation stages; those remain loadable as pre-compiled bytecode.
func (nagaToolchain) SupportedStages() []Stage {
	return []Stage{StageVertex, StageFragment, StageCompute}
}

func (nagaToolchain) NewCompiler() Compiler { return &nagaCompiler{} }

func (nagaToolchain) NewOptions() Options {
	return &nagaOptions{version: spirv.Version1_3, debug: true}
}

// nagaOptions is the per-call option set for the naga backend.
type nagaOptions struct {
	version  spirv.Version
	debug    bool
	released bool
}

// SetOptimization maps the optimization level onto naga's output controls.
// naga has no optimizing passes; OptimizeSize and OptimizePerformance
// strip debug information, OptimizeZero keeps it.
func (o *nagaOptions) SetOptimization(level OptimizationLevel) {
	o.debug = level == OptimizeZero
}

// targetVersions maps target environment tags to the SPIR-V version each
// environment guarantees support for.
var targetVersions = map[TargetEnv]spirv.Version{
	TargetVulkan1_0: spirv.Version1_0,
	TargetVulkan1_1: spirv.Version1_3,
	TargetVulkan1_2: spirv.Version1_5,
	TargetVulkan1_3: spirv.Version1_6,
}

func (o *nagaOptions) SetTargetEnv(env TargetEnv) {
	if v, ok := targetVersions[env]; ok {
		o.version = v
	}
}

func (o *nagaOptions) Release() { o.released = true }

// nagaCompiler is a single-call compiler session.
type nagaCompiler struct {
	released bool
}

func (c *nagaCompiler) Release() { c.released = true }

// irStages maps spv stages to naga IR stages for the entry point check.
var irStages = map[Stage]ir.ShaderStage{
	StageVertex:   ir.StageVertex,
	StageFragment: ir.StageFragment,
	StageCompute:  ir.StageCompute,
}

// Compile runs the naga pipeline stage by stage (parse, lower, generate)
// so that entry points are observable before code generation.
func (c *nagaCompiler) Compile(source, filename string, stage Stage, opts Options) (*CompileResult, error) {
	no, ok := opts.(*nagaOptions)
	if !ok {
		return nil, fmt.Errorf("naga: option set %T belongs to a different toolchain", opts)
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, &compileFailure{cause: err, errs: nagaErrorCount(err)}
	}

	lowered, err := wgsl.LowerWithWarnings(ast, source)
	if err != nil {
		return nil, &compileFailure{cause: err, errs: nagaErrorCount(err)}
	}
	warnings := len(lowered.Warnings)
	module := lowered.Module

	if !hasEntryPoint(module, irStages[stage]) {
		return nil, &compileFailure{
			cause: fmt.Errorf("naga: %s has no %s entry point", filename, stage),
			errs:  1,
			warns: warnings,
		}
	}

	code, err := naga.GenerateSPIRV(module, spirv.Options{
		Version: no.version,
		Debug:   no.debug,
	})
	if err != nil {
		return nil, &compileFailure{cause: err, errs: nagaErrorCount(err), warns: warnings}
	}

	return &CompileResult{Bytecode: code, Warnings: warnings}, nil
}

// hasEntryPoint reports whether the module declares an entry point for
// the given IR stage.
func hasEntryPoint(m *ir.Module, stage ir.ShaderStage) bool {
	for _, ep := range m.EntryPoints {
		if ep.Stage == stage {
			return true
		}
	}
	return false
}

// compileFailure carries the compiler's structured counts alongside the
// underlying cause.
type compileFailure struct {
	cause error
	errs  int
	warns int
}

func (f *compileFailure) Error() string { return f.cause.Error() }
func (f *compileFailure) Unwrap() error { return f.cause }

// nagaErrorCount extracts the number of distinct source errors from a
// naga error. naga renders multi-error lowering failures as
// "first error (and N more errors)"; anything else counts as one.
func nagaErrorCount(err error) int {
	msg := err.Error()
	const prefix, suffix = "(and ", " more errors)"
	i := strings.LastIndex(msg, prefix)
	if i < 0 || !strings.HasSuffix(msg, suffix) {
		return 1
	}
	n, convErr := strconv.Atoi(msg[i+len(prefix) : len(msg)-len(suffix)])
	if convErr != nil || n < 1 {
		return 1
	}
	return n + 1
}

// compileErrorCount returns the error count a failed compilation carries.
func compileErrorCount(err error) int {
	var f *compileFailure
	if errors.As(err, &f) {
		return f.errs
	}
	return 1
}

// compileWarningCount returns the warning count a failed compilation
// carries, when the backend recorded one.
func compileWarningCount(err error) int {
	var f *compileFailure
	if errors.As(err, &f) {
		return f.warns
	}
	return 0
}
