// Package wgpu adapts a gogpu/wgpu HAL device to the spv layout
// interfaces, so layouts assembled with spv can be realized on the Pure
// Go WebGPU implementation.
//
// WebGPU has no push constants. Realizing a description that carries
// push constant ranges fails with [ResultPushConstantsUnsupported];
// callers targeting wgpu should move that data into a uniform buffer.
package wgpu

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/spv"
	"github.com/gogpu/wgpu/hal"
)

// Result codes reported through spv.NativeError.
const (
	// ResultCreationFailed indicates the HAL rejected the creation call.
	ResultCreationFailed spv.Result = -1

	// ResultUnknownHandle indicates a set layout handle that was not
	// registered with this adapter.
	ResultUnknownHandle spv.Result = -2

	// ResultPushConstantsUnsupported indicates the description carries
	// push constant ranges, which WebGPU cannot express.
	ResultPushConstantsUnsupported spv.Result = -3
)

// DeviceAdapter implements spv.Device on top of a hal.Device. It keeps
// the mapping between the opaque uint64 handles spv works with and the
// HAL objects behind them.
//
// DeviceAdapter is safe for concurrent use.
type DeviceAdapter struct {
	device hal.Device
	nextID atomic.Uint64

	mu              sync.Mutex
	bindGroups      map[uint64]hal.BindGroupLayout
	pipelineLayouts map[uint64]hal.PipelineLayout
}

// NewDeviceAdapter wraps a HAL device.
func NewDeviceAdapter(device hal.Device) *DeviceAdapter {
	a := &DeviceAdapter{
		device:          device,
		bindGroups:      make(map[uint64]hal.BindGroupLayout),
		pipelineLayouts: make(map[uint64]hal.PipelineLayout),
	}
	// 0 is spv.NullHandle.
	a.nextID.Store(1)
	return a
}

// setLayout is the adapter's spv.SetLayout implementation.
type setLayout struct {
	handle uint64
}

func (l *setLayout) NativeHandle() uint64 { return l.handle }

// RegisterBindGroupLayout assigns a handle to an existing HAL bind group
// layout so a spv.LayoutDescription can reference it by slot index. The
// adapter does not own the layout; destroying it remains the caller's
// responsibility.
func (a *DeviceAdapter) RegisterBindGroupLayout(l hal.BindGroupLayout) spv.SetLayout {
	id := a.nextID.Add(1) - 1
	a.mu.Lock()
	a.bindGroups[id] = l
	a.mu.Unlock()
	return &setLayout{handle: id}
}

// CreatePipelineLayout implements spv.Device.
func (a *DeviceAdapter) CreatePipelineLayout(info *spv.PipelineLayoutInfo) (uint64, spv.Result) {
	if len(info.PushConstants) > 0 {
		return spv.NullHandle, ResultPushConstantsUnsupported
	}

	a.mu.Lock()
	layouts := make([]hal.BindGroupLayout, len(info.SetLayouts))
	for i, h := range info.SetLayouts {
		if h == spv.NullHandle {
			continue
		}
		l, ok := a.bindGroups[h]
		if !ok {
			a.mu.Unlock()
			return spv.NullHandle, ResultUnknownHandle
		}
		layouts[i] = l
	}
	a.mu.Unlock()

	pl, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "spv_pipeline_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		spv.Logger().Warn("wgpu: pipeline layout creation failed", "error", err)
		return spv.NullHandle, ResultCreationFailed
	}

	id := a.nextID.Add(1) - 1
	a.mu.Lock()
	a.pipelineLayouts[id] = pl
	a.mu.Unlock()
	return id, spv.Success
}

// DestroyPipelineLayout implements spv.Device.
func (a *DeviceAdapter) DestroyPipelineLayout(handle uint64) {
	a.mu.Lock()
	pl, ok := a.pipelineLayouts[handle]
	delete(a.pipelineLayouts, handle)
	a.mu.Unlock()
	if ok {
		a.device.DestroyPipelineLayout(pl)
	}
}
