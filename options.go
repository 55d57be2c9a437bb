package spv

// CompileOption configures a CompileShader call.
// Use functional options to customize compilation behavior.
//
// Example:
//
//	// Default compilation (no optimization, toolchain default target)
//	art, err := spv.CompileShader("blur", ref, spv.StageCompute)
//
//	// Optimized Vulkan 1.3 build
//	art, err := spv.CompileShader("blur", ref, spv.StageCompute,
//	    spv.WithOptimize(spv.OptimizePerformance),
//	    spv.WithTargetEnv(spv.TargetVulkan1_3))
type CompileOption func(*compileConfig)

// compileConfig holds optional configuration for a compilation call.
type compileConfig struct {
	optimize  OptimizationLevel
	targetEnv TargetEnv // empty means toolchain default
	filename  string
	toolchain Toolchain
}

// defaultCompileConfig returns the default compilation configuration.
func defaultCompileConfig() compileConfig {
	return compileConfig{
		optimize:  OptimizeZero,
		toolchain: NagaToolchain(),
	}
}

// WithOptimize sets the optimization level. The default is [OptimizeZero].
func WithOptimize(level OptimizationLevel) CompileOption {
	return func(c *compileConfig) {
		c.optimize = level
	}
}

// WithTargetEnv sets the target environment tag the bytecode is built for.
// When omitted, the toolchain's default target is used.
func WithTargetEnv(env TargetEnv) CompileOption {
	return func(c *compileConfig) {
		c.targetEnv = env
	}
}

// WithFilename sets the display-only source label used in diagnostics.
// It defaults to the artifact name.
func WithFilename(name string) CompileOption {
	return func(c *compileConfig) {
		c.filename = name
	}
}

// WithToolchain sets a custom shader toolchain.
// Use this for dependency injection of alternative compilers.
func WithToolchain(tc Toolchain) CompileOption {
	return func(c *compileConfig) {
		if tc != nil {
			c.toolchain = tc
		}
	}
}
