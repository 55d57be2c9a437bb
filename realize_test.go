package spv

import (
	"errors"
	"testing"
)

// fakeDevice records creation payloads and destruction counts.
type fakeDevice struct {
	lastInfo   *PipelineLayoutInfo
	nextHandle uint64
	failWith   Result
	destroys   map[uint64]int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{nextHandle: 100, destroys: make(map[uint64]int)}
}

func (d *fakeDevice) CreatePipelineLayout(info *PipelineLayoutInfo) (uint64, Result) {
	d.lastInfo = info
	if d.failWith != Success {
		return NullHandle, d.failWith
	}
	d.nextHandle++
	return d.nextHandle, Success
}

func (d *fakeDevice) DestroyPipelineLayout(handle uint64) {
	d.destroys[handle]++
}

func TestRealizeBuildsHandleList(t *testing.T) {
	dev := newFakeDevice()
	desc := NewLayoutDescription()
	_ = desc.AddSetLayout(0, &stubSetLayout{handle: 11})
	_ = desc.AddSetLayout(2, &stubSetLayout{handle: 33})
	_ = desc.AddPushConstant(16, 64, StageVertex, StageFragment)

	layout, err := Realize(dev, desc)
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	defer layout.Destroy()

	info := dev.lastInfo
	if len(info.SetLayouts) != 3 {
		t.Fatalf("slot count = %d, want 3 (highest index + 1)", len(info.SetLayouts))
	}
	want := []uint64{11, NullHandle, 33}
	for i, h := range want {
		if info.SetLayouts[i] != h {
			t.Errorf("SetLayouts[%d] = %d, want %d", i, info.SetLayouts[i], h)
		}
	}

	if len(info.PushConstants) != 1 {
		t.Fatalf("push constant count = %d, want 1", len(info.PushConstants))
	}
	pc := info.PushConstants[0]
	if pc.Offset != 16 || pc.Size != 64 {
		t.Errorf("range = {%d, %d}, want {16, 64}", pc.Offset, pc.Size)
	}
	if pc.Stages != StageFlagVertex|StageFlagFragment {
		t.Errorf("Stages = 0x%02x, want 0x%02x", pc.Stages, StageFlagVertex|StageFlagFragment)
	}

	if layout.NativeHandle() == NullHandle {
		t.Error("realized layout has null handle")
	}
	if layout.Description() != desc {
		t.Error("Description() does not return the consumed description")
	}
}

func TestRealizeEmptyDescription(t *testing.T) {
	dev := newFakeDevice()
	layout, err := Realize(dev, NewLayoutDescription())
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	defer layout.Destroy()

	if len(dev.lastInfo.SetLayouts) != 0 {
		t.Errorf("slot count = %d, want 0", len(dev.lastInfo.SetLayouts))
	}
}

func TestRealizeNativeFailure(t *testing.T) {
	dev := newFakeDevice()
	dev.failWith = Result(-4)

	_, err := Realize(dev, NewLayoutDescription())
	var ne *NativeError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want *NativeError", err)
	}
	if ne.Result != Result(-4) {
		t.Errorf("Result = %d, want -4", ne.Result)
	}
}

func TestRealizeValidatesDescription(t *testing.T) {
	dev := newFakeDevice()
	desc := NewLayoutDescription()
	desc.setLayouts[0] = nil // simulate direct construction

	_, err := Realize(dev, desc)
	var handleErr *InvalidHandleError
	if !errors.As(err, &handleErr) {
		t.Fatalf("error = %v, want *InvalidHandleError", err)
	}
	if dev.lastInfo != nil {
		t.Error("creation call submitted despite validation failure")
	}
}

func TestPipelineLayoutDestroyIdempotent(t *testing.T) {
	dev := newFakeDevice()
	desc := NewLayoutDescription()
	_ = desc.AddSetLayout(0, &stubSetLayout{handle: 1})

	layout, err := Realize(dev, desc)
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	handle := layout.NativeHandle()

	layout.Destroy()
	layout.Destroy()
	layout.Destroy()

	if got := dev.destroys[handle]; got != 1 {
		t.Errorf("native destroy called %d times, want exactly 1", got)
	}
	if layout.NativeHandle() != NullHandle {
		t.Error("handle not nulled after release")
	}
}

func TestPipelineLayoutDestroyZeroValue(t *testing.T) {
	// A never-realized layout and a nil pointer must both be safe.
	var zero PipelineLayout
	zero.Destroy()

	var nilLayout *PipelineLayout
	nilLayout.Destroy()
}

func TestStageMask(t *testing.T) {
	mask := stageMask([]Stage{StageCompute})
	if mask != StageFlagCompute {
		t.Errorf("mask = 0x%02x, want 0x%02x", mask, StageFlagCompute)
	}

	all := stageMask(Stages())
	if all != 0x3f {
		t.Errorf("all-stage mask = 0x%02x, want 0x3f", all)
	}
}
