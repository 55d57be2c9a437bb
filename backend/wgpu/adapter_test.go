package wgpu

import (
	"testing"

	"github.com/gogpu/spv"
)

func TestRegisterBindGroupLayoutHandles(t *testing.T) {
	a := NewDeviceAdapter(nil)

	first := a.RegisterBindGroupLayout(nil)
	second := a.RegisterBindGroupLayout(nil)

	if first.NativeHandle() == spv.NullHandle {
		t.Error("registered layout has null handle")
	}
	if first.NativeHandle() == second.NativeHandle() {
		t.Error("two registrations share a handle")
	}
}

func TestCreatePipelineLayoutRejectsPushConstants(t *testing.T) {
	a := NewDeviceAdapter(nil)

	handle, res := a.CreatePipelineLayout(&spv.PipelineLayoutInfo{
		PushConstants: []spv.PushConstantInfo{
			{Stages: spv.StageFlagCompute, Offset: 0, Size: 64},
		},
	})
	if res != ResultPushConstantsUnsupported {
		t.Errorf("result = %d, want %d", res, ResultPushConstantsUnsupported)
	}
	if handle != spv.NullHandle {
		t.Errorf("handle = %d, want null", handle)
	}
}

func TestCreatePipelineLayoutUnknownHandle(t *testing.T) {
	a := NewDeviceAdapter(nil)

	_, res := a.CreatePipelineLayout(&spv.PipelineLayoutInfo{
		SetLayouts: []uint64{12345},
	})
	if res != ResultUnknownHandle {
		t.Errorf("result = %d, want %d", res, ResultUnknownHandle)
	}
}

func TestDestroyUnknownPipelineLayoutIsSafe(t *testing.T) {
	a := NewDeviceAdapter(nil)
	// Must not reach the nil device.
	a.DestroyPipelineLayout(999)
}
