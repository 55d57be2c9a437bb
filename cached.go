package spv

import (
	"fmt"

	"github.com/gogpu/spv/cache"
)

// CachingCompiler is a compile-through cache: it resolves a source
// reference, derives the source identity with [HashSource], and only
// invokes the compiler when no artifact for that identity is cached.
//
// The cache key combines the source hash with the stage, because stages
// produce different bytecode from the same source; the identity itself
// stays option-independent, so changing optimization flags reuses the
// cached artifact by design.
//
// CachingCompiler is safe for concurrent use. Concurrent misses for the
// same key may compile more than once; last write wins.
type CachingCompiler struct {
	artifacts *cache.Sharded[*Artifact]
	opts      []CompileOption
}

// NewCachingCompiler creates a caching compiler holding up to capacity
// artifacts per cache shard. The options apply to every compilation.
func NewCachingCompiler(capacity int, opts ...CompileOption) *CachingCompiler {
	return &CachingCompiler{
		artifacts: cache.New[*Artifact](capacity),
		opts:      opts,
	}
}

// Compile returns a cached artifact for the reference's source identity,
// compiling on miss.
func (c *CachingCompiler) Compile(name string, ref SourceRef, stage Stage) (*Artifact, error) {
	source, err := ref.Resolve()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s", HashSource(source), stage)
	if art, ok := c.artifacts.Get(key); ok {
		return art, nil
	}
	art, err := CompileShader(name, InlineSource(source), stage, c.opts...)
	if err != nil {
		return nil, err
	}
	c.artifacts.Put(key, art)
	return art, nil
}

// Stats returns the cumulative cache hit and miss counts.
func (c *CachingCompiler) Stats() (hits, misses uint64) {
	return c.artifacts.Stats()
}
