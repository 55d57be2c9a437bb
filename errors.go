package spv

import (
	"fmt"
	"strings"
)

// SourceNotFoundError is returned when a shader source reference cannot be
// resolved to text or bytes. Attempted lists every location that was tried.
type SourceNotFoundError struct {
	Ref       string
	Attempted []string
}

func (e *SourceNotFoundError) Error() string {
	if len(e.Attempted) == 0 {
		return fmt.Sprintf("spv: source not found: %q", e.Ref)
	}
	return fmt.Sprintf("spv: source not found: %q (tried %s)", e.Ref, strings.Join(e.Attempted, ", "))
}

// InvalidOptionError is returned when a compile option is not a member of
// the supported set. Valid carries the full supported set for diagnostics.
type InvalidOptionError struct {
	Option string // "stage", "optimize" or "target-env"
	Value  string
	Valid  []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("spv: invalid %s %q (valid: %s)", e.Option, e.Value, strings.Join(e.Valid, ", "))
}

// CompileError is returned when the compiler rejects shader source.
// Excerpt holds at most the first 30 lines of the source, with a
// truncation marker when the source is longer, so payloads stay bounded
// for large shaders.
type CompileError struct {
	Stage    Stage
	Message  string
	Errors   int
	Warnings int
	Excerpt  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("spv: %s shader compilation failed (%d errors, %d warnings): %s",
		e.Stage, e.Errors, e.Warnings, e.Message)
}

// InvalidFormatError is returned when loaded bytecode does not begin with
// the SPIR-V magic number.
type InvalidFormatError struct {
	Location string
	Expected uint32
	Actual   uint32
	Size     int // total byte size of the input, for short-input diagnostics
}

func (e *InvalidFormatError) Error() string {
	if e.Size < 4 {
		return fmt.Sprintf("spv: invalid bytecode at %q: %d bytes, shorter than the 4-byte magic 0x%08x",
			e.Location, e.Size, e.Expected)
	}
	return fmt.Sprintf("spv: invalid bytecode at %q: magic 0x%08x, want 0x%08x",
		e.Location, e.Actual, e.Expected)
}

// InvalidHandleError is returned when a set layout added to a description
// is nil or carries a null native handle.
type InvalidHandleError struct {
	Index uint32
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("spv: invalid set layout handle at index %d", e.Index)
}

// InvalidStageError is returned when a push constant range names stages
// outside the valid stage set.
type InvalidStageError struct {
	Invalid []Stage
	Valid   []Stage
}

func (e *InvalidStageError) Error() string {
	if len(e.Invalid) == 0 {
		return fmt.Sprintf("spv: empty stage set (valid: %s)", strings.Join(stageTags(e.Valid), ", "))
	}
	return fmt.Sprintf("spv: invalid stages %s (valid: %s)",
		strings.Join(stageTags(e.Invalid), ", "), strings.Join(stageTags(e.Valid), ", "))
}

// InvalidRangeError is returned when a push constant range has a negative
// offset or a non-positive size.
type InvalidRangeError struct {
	Offset int
	Size   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("spv: invalid push constant range (offset %d, size %d): offset must be >= 0 and size > 0",
		e.Offset, e.Size)
}

// NativeError is returned when a backend creation call fails.
// Result carries the backend's numeric result code.
type NativeError struct {
	Op     string
	Result Result
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("spv: %s failed with backend result %d", e.Op, int32(e.Result))
}
