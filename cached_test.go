package spv

import (
	"testing"
)

func TestCachingCompilerReuses(t *testing.T) {
	tc := &fakeToolchain{result: magicLE}
	cc := NewCachingCompiler(16, WithToolchain(tc))

	first, err := cc.Compile("s", InlineSource("a\nb\n"), StageCompute)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := cc.Compile("s", InlineSource("a\nb\n"), StageCompute)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if tc.compiles != 1 {
		t.Errorf("compiler invoked %d times, want 1", tc.compiles)
	}
	if first != second {
		t.Error("cache returned a different artifact for the same identity")
	}
	if hits, misses := cc.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits/%d misses, want 1/1", hits, misses)
	}
}

func TestCachingCompilerKeyIncludesStage(t *testing.T) {
	tc := &fakeToolchain{result: magicLE}
	cc := NewCachingCompiler(16, WithToolchain(tc))

	// Same source compiled for two stages must not collide.
	source := "@vertex fn vs() {}\n@fragment fn fs() {}\n"
	if _, err := cc.Compile("s", InlineSource(source), StageVertex); err != nil {
		t.Fatalf("Compile vertex: %v", err)
	}
	if _, err := cc.Compile("s", InlineSource(source), StageFragment); err != nil {
		t.Fatalf("Compile fragment: %v", err)
	}
	if tc.compiles != 2 {
		t.Errorf("compiler invoked %d times, want 2 (one per stage)", tc.compiles)
	}
}

func TestCachingCompilerDistinctSources(t *testing.T) {
	tc := &fakeToolchain{result: magicLE}
	cc := NewCachingCompiler(16, WithToolchain(tc))

	if _, err := cc.Compile("a", InlineSource("a\n"), StageCompute); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := cc.Compile("b", InlineSource("b\n"), StageCompute); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if tc.compiles != 2 {
		t.Errorf("compiler invoked %d times, want 2", tc.compiles)
	}
}

func TestCachingCompilerPropagatesResolveErrors(t *testing.T) {
	tc := &fakeToolchain{result: magicLE}
	cc := NewCachingCompiler(16, WithToolchain(tc))

	if _, err := cc.Compile("s", FileSource("missing.wgsl"), StageCompute); err == nil {
		t.Fatal("expected resolution error")
	}
	if tc.compiles != 0 {
		t.Errorf("compiler invoked %d times for unresolvable source, want 0", tc.compiles)
	}
}
