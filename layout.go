package spv

import (
	"slices"
	"sort"
)

// SetLayout is implemented by any descriptor set layout object that
// exposes a retrievable native handle. The core never constructs set
// layouts itself; backends (or backend/wgpu's adapter) provide them and
// the description references them by slot index.
type SetLayout interface {
	// NativeHandle returns the backend handle. Must be non-zero.
	NativeHandle() uint64
}

// NullHandle is the placeholder substituted for unfilled set layout slots
// when a description with index gaps is realized.
const NullHandle uint64 = 0

// MaxGuaranteedPushConstantBytes is the only push constant size the
// graphics API guarantees support for. Larger ranges are accepted with an
// advisory warning.
const MaxGuaranteedPushConstantBytes = 128

// PushConstantRange is a block of inline data pushed directly into a
// pipeline invocation, addressed by byte offset and size and restricted
// to a subset of stages.
type PushConstantRange struct {
	Offset uint32
	Size   uint32
	Stages []Stage
}

// LayoutDescription accumulates descriptor set layouts and push constant
// ranges for pipeline layout creation. Mutate it through AddSetLayout and
// AddPushConstant; every mutation is validated, and Finalize revalidates
// the whole description so that directly assembled data goes through the
// same rules as builder usage.
//
// A LayoutDescription is not safe for concurrent mutation.
type LayoutDescription struct {
	setLayouts    map[uint32]SetLayout
	pushConstants []PushConstantRange
}

// NewLayoutDescription creates an empty layout description.
func NewLayoutDescription() *LayoutDescription {
	return &LayoutDescription{setLayouts: make(map[uint32]SetLayout)}
}

// NewLayoutDescriptionFrom creates a description from caller-assembled
// data. The inputs are copied, never aliased, and validated immediately;
// on the first violation the error is returned and no description.
func NewLayoutDescriptionFrom(sets map[uint32]SetLayout, ranges []PushConstantRange) (*LayoutDescription, error) {
	d := NewLayoutDescription()
	for index, layout := range sets {
		if err := d.AddSetLayout(index, layout); err != nil {
			return nil, err
		}
	}
	for _, r := range ranges {
		if err := d.AddPushConstant(int(r.Offset), int(r.Size), r.Stages...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AddSetLayout registers a descriptor set layout at a slot index.
// The layout must be non-nil and expose a non-zero native handle,
// otherwise *InvalidHandleError is returned. Adding to an occupied index
// overwrites the previous entry: last write wins.
func (d *LayoutDescription) AddSetLayout(index uint32, layout SetLayout) error {
	if layout == nil || layout.NativeHandle() == NullHandle {
		return &InvalidHandleError{Index: index}
	}
	if d.setLayouts == nil {
		d.setLayouts = make(map[uint32]SetLayout)
	}
	d.setLayouts[index] = layout
	return nil
}

// AddPushConstant appends a push constant range. The offset must be
// non-negative and the size positive (*InvalidRangeError otherwise);
// the stages must form a non-empty subset of the valid stage set
// (*InvalidStageError naming the offenders otherwise). A size above
// [MaxGuaranteedPushConstantBytes] is accepted with an advisory warning.
func (d *LayoutDescription) AddPushConstant(offset, size int, stages ...Stage) error {
	if offset < 0 || size <= 0 {
		return &InvalidRangeError{Offset: offset, Size: size}
	}
	if err := validateStageSet(stages); err != nil {
		return err
	}
	if size > MaxGuaranteedPushConstantBytes {
		Logger().Warn("spv: push constant range exceeds the guaranteed size",
			"size", size, "guaranteed", MaxGuaranteedPushConstantBytes)
	}
	d.pushConstants = append(d.pushConstants, PushConstantRange{
		Offset: uint32(offset),
		Size:   uint32(size),
		Stages: slices.Clone(stages),
	})
	return nil
}

// validateStageSet checks a push constant stage set: non-empty, every
// member drawn from the stage enum.
func validateStageSet(stages []Stage) error {
	if len(stages) == 0 {
		return &InvalidStageError{Valid: Stages()}
	}
	var invalid []Stage
	for _, s := range stages {
		if !s.valid() {
			invalid = append(invalid, s)
		}
	}
	if len(invalid) > 0 {
		return &InvalidStageError{Invalid: invalid, Valid: Stages()}
	}
	return nil
}

// SetLayoutCount returns the number of slots a realized layout will have:
// the highest filled index plus one, or zero when empty. Index gaps count
// as slots and are filled with [NullHandle] at realization.
func (d *LayoutDescription) SetLayoutCount() int {
	highest := -1
	for index := range d.setLayouts {
		if int(index) > highest {
			highest = int(index)
		}
	}
	return highest + 1
}

// PushConstants returns a copy of the accumulated push constant ranges.
func (d *LayoutDescription) PushConstants() []PushConstantRange {
	out := make([]PushConstantRange, len(d.pushConstants))
	for i, r := range d.pushConstants {
		out[i] = PushConstantRange{Offset: r.Offset, Size: r.Size, Stages: slices.Clone(r.Stages)}
	}
	return out
}

// Finalize revalidates every entry against the same rules the builder
// enforces, defending against descriptions assembled around the builder,
// and checks that the set layout indices form a contiguous run from 0.
// A gap is legal in the API but usually a caller mistake, so it logs an
// advisory warning instead of failing.
func (d *LayoutDescription) Finalize() error {
	indices := make([]int, 0, len(d.setLayouts))
	for index, layout := range d.setLayouts {
		if layout == nil || layout.NativeHandle() == NullHandle {
			return &InvalidHandleError{Index: index}
		}
		indices = append(indices, int(index))
	}
	for _, r := range d.pushConstants {
		if r.Size == 0 {
			return &InvalidRangeError{Offset: int(r.Offset), Size: int(r.Size)}
		}
		if err := validateStageSet(r.Stages); err != nil {
			return err
		}
		if r.Size > MaxGuaranteedPushConstantBytes {
			Logger().Warn("spv: push constant range exceeds the guaranteed size",
				"size", r.Size, "guaranteed", MaxGuaranteedPushConstantBytes)
		}
	}

	sort.Ints(indices)
	for i, index := range indices {
		if i != index {
			Logger().Warn("spv: set layout indices are not contiguous from 0",
				"indices", indices)
			break
		}
	}
	return nil
}
