package spv

// Result is a backend-native result code. Zero means success; any other
// value is backend-specific and surfaced verbatim through *NativeError.
type Result int32

// Success is the zero result code shared by every backend.
const Success Result = 0

// PushConstantInfo is a push constant range translated into the backend's
// bitmask encoding.
type PushConstantInfo struct {
	Stages StageFlags
	Offset uint32
	Size   uint32
}

// PipelineLayoutInfo is the single-call creation payload handed to a
// Device. SetLayouts holds one native handle per slot, [NullHandle] in
// unfilled gaps.
type PipelineLayoutInfo struct {
	SetLayouts    []uint64
	PushConstants []PushConstantInfo
}

// Device creates and destroys backend pipeline layout objects. Each
// backend maintains its own mapping between the opaque uint64 handles
// and actual resources.
type Device interface {
	// CreatePipelineLayout allocates a backend layout object.
	// A non-zero Result indicates failure and the handle is undefined.
	CreatePipelineLayout(info *PipelineLayoutInfo) (uint64, Result)

	// DestroyPipelineLayout releases a layout previously created by
	// CreatePipelineLayout.
	DestroyPipelineLayout(handle uint64)
}

// PipelineLayout wraps a realized backend layout handle together with the
// device that owns it. It owns the native handle exclusively; Destroy
// releases it through the device exactly once.
type PipelineLayout struct {
	desc   *LayoutDescription
	dev    Device
	handle uint64
}

// stageMask folds a stage set into the backend bitmask encoding.
func stageMask(stages []Stage) StageFlags {
	var mask StageFlags
	for _, s := range stages {
		mask |= s.Flag()
	}
	return mask
}

// Realize finalizes a description and turns it into a backend pipeline
// layout. The slot list spans the highest filled index (gaps carry
// [NullHandle]), push constant stage sets are translated into bitmasks,
// and a single creation call is submitted. A backend failure is surfaced
// as *NativeError carrying the numeric result code.
//
// The description is consumed: it must not be mutated afterwards.
func Realize(dev Device, desc *LayoutDescription) (*PipelineLayout, error) {
	if err := desc.Finalize(); err != nil {
		return nil, err
	}

	info := PipelineLayoutInfo{
		SetLayouts: make([]uint64, desc.SetLayoutCount()),
	}
	for i := range info.SetLayouts {
		info.SetLayouts[i] = NullHandle
	}
	for index, layout := range desc.setLayouts {
		info.SetLayouts[index] = layout.NativeHandle()
	}
	for _, r := range desc.pushConstants {
		info.PushConstants = append(info.PushConstants, PushConstantInfo{
			Stages: stageMask(r.Stages),
			Offset: r.Offset,
			Size:   r.Size,
		})
	}

	handle, res := dev.CreatePipelineLayout(&info)
	if res != Success {
		return nil, &NativeError{Op: "create pipeline layout", Result: res}
	}

	Logger().Debug("spv: realized pipeline layout",
		"sets", len(info.SetLayouts), "pushConstants", len(info.PushConstants))

	return &PipelineLayout{desc: desc, dev: dev, handle: handle}, nil
}

// NativeHandle returns the backend layout handle, or [NullHandle] after
// Destroy.
func (p *PipelineLayout) NativeHandle() uint64 { return p.handle }

// Description returns the layout description this layout was realized
// from.
func (p *PipelineLayout) Description() *LayoutDescription { return p.desc }

// Destroy releases the native handle through the owning device. It is
// idempotent: the handle is nulled after release, so double destruction
// and destruction of a never-assigned layout are both safe.
func (p *PipelineLayout) Destroy() {
	if p == nil || p.handle == NullHandle {
		return
	}
	p.dev.DestroyPipelineLayout(p.handle)
	p.handle = NullHandle
}
