package spv

import "fmt"

// Stage identifies the pipeline role a shader program fulfills.
type Stage uint8

// Shader stages.
const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
	StageGeometry
	StageTessControl
	StageTessEval

	stageCount
)

// stageNames maps stages to their canonical tags. Process-wide, read-only.
var stageNames = [stageCount]string{
	StageVertex:      "vertex",
	StageFragment:    "fragment",
	StageCompute:     "compute",
	StageGeometry:    "geometry",
	StageTessControl: "tess-control",
	StageTessEval:    "tess-eval",
}

// String returns the canonical tag for the stage ("vertex", "fragment", ...).
func (s Stage) String() string {
	if !s.valid() {
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
	return stageNames[s]
}

// valid reports whether s is a member of the stage enum.
func (s Stage) valid() bool { return s < stageCount }

// StageFlags is a bitmask of shader stages in the Vulkan bit layout.
type StageFlags uint32

// Stage bits, matching VkShaderStageFlagBits.
const (
	StageFlagVertex      StageFlags = 1 << 0
	StageFlagTessControl StageFlags = 1 << 1
	StageFlagTessEval    StageFlags = 1 << 2
	StageFlagGeometry    StageFlags = 1 << 3
	StageFlagFragment    StageFlags = 1 << 4
	StageFlagCompute     StageFlags = 1 << 5
)

// stageFlagBits maps each stage to its backend bit.
var stageFlagBits = [stageCount]StageFlags{
	StageVertex:      StageFlagVertex,
	StageFragment:    StageFlagFragment,
	StageCompute:     StageFlagCompute,
	StageGeometry:    StageFlagGeometry,
	StageTessControl: StageFlagTessControl,
	StageTessEval:    StageFlagTessEval,
}

// Flag returns the backend bitmask bit for the stage.
// Invalid stages map to 0.
func (s Stage) Flag() StageFlags {
	if !s.valid() {
		return 0
	}
	return stageFlagBits[s]
}

// Stages returns the full stage enum, in declaration order.
// The returned slice is a copy; callers may modify it.
func Stages() []Stage {
	out := make([]Stage, stageCount)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// ParseStage returns the stage for a canonical tag.
// Unknown tags return an *InvalidOptionError carrying the valid set.
func ParseStage(tag string) (Stage, error) {
	for i, name := range stageNames {
		if name == tag {
			return Stage(i), nil
		}
	}
	return 0, &InvalidOptionError{
		Option: "stage",
		Value:  tag,
		Valid:  stageTags(Stages()),
	}
}

// stageTags renders a stage set as canonical tags for diagnostics.
func stageTags(stages []Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = s.String()
	}
	return out
}

// OptimizationLevel selects how aggressively compiled bytecode is optimized.
type OptimizationLevel uint8

// Optimization levels.
const (
	// OptimizeZero disables optimization and keeps debug information.
	// This is the default.
	OptimizeZero OptimizationLevel = iota
	// OptimizeSize strips debug information to minimize bytecode size.
	OptimizeSize
	// OptimizePerformance optimizes for execution speed.
	OptimizePerformance

	optimizationCount
)

var optimizationNames = [optimizationCount]string{
	OptimizeZero:        "zero",
	OptimizeSize:        "size",
	OptimizePerformance: "performance",
}

func (o OptimizationLevel) String() string {
	if !o.valid() {
		return fmt.Sprintf("OptimizationLevel(%d)", uint8(o))
	}
	return optimizationNames[o]
}

func (o OptimizationLevel) valid() bool { return o < optimizationCount }

// OptimizationLevels returns the supported optimization levels.
func OptimizationLevels() []OptimizationLevel {
	out := make([]OptimizationLevel, optimizationCount)
	for i := range out {
		out[i] = OptimizationLevel(i)
	}
	return out
}

// optimizationTags renders the optimization set for diagnostics.
func optimizationTags() []string {
	levels := OptimizationLevels()
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.String()
	}
	return out
}

// TargetEnv tags a target environment for compiled bytecode.
type TargetEnv string

// Supported target environments.
const (
	TargetVulkan1_0 TargetEnv = "vulkan1.0"
	TargetVulkan1_1 TargetEnv = "vulkan1.1"
	TargetVulkan1_2 TargetEnv = "vulkan1.2"
	TargetVulkan1_3 TargetEnv = "vulkan1.3"
)

// TargetEnvs returns the supported target environment tags.
func TargetEnvs() []TargetEnv {
	return []TargetEnv{TargetVulkan1_0, TargetVulkan1_1, TargetVulkan1_2, TargetVulkan1_3}
}

func (e TargetEnv) valid() bool {
	switch e {
	case TargetVulkan1_0, TargetVulkan1_1, TargetVulkan1_2, TargetVulkan1_3:
		return true
	}
	return false
}

// targetEnvTags renders the target environment set for diagnostics.
func targetEnvTags() []string {
	envs := TargetEnvs()
	out := make([]string, len(envs))
	for i, e := range envs {
		out[i] = string(e)
	}
	return out
}
