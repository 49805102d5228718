// Package ctxerr defines the error taxonomy shared across the volumetric
// transform core: invariant violations that abort the process, and the two
// recoverable error kinds a caller can act on.
package ctxerr

import "fmt"

// Kind identifies the class of an InvariantViolation.
type Kind string

const (
	// ShapeMismatch covers any Volume whose data length does not match
	// shape.D*shape.H*shape.W, or whose spacing is non-positive/non-finite.
	ShapeMismatch Kind = "ShapeMismatch"
	// InvalidPermutation covers a Transpose axis argument that is not a
	// permutation of (0,1,2).
	InvalidPermutation Kind = "InvalidPermutation"
)

// InvariantViolation is panicked (never returned) by a stage that detects a
// broken Volume invariant or an invalid argument it must fail fast on.
// This mirrors spec.md §7: "CPU stages treat invariant violations as
// unrecoverable (panic/abort with a descriptive message)".
type InvariantViolation struct {
	Kind   Kind
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Raise panics with a freshly constructed InvariantViolation.
func Raise(kind Kind, format string, args ...any) {
	panic(&InvariantViolation{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// UnsupportedNormalizationScheme is returned (never panicked) when a plan
// requests a normalization scheme this core does not implement.
type UnsupportedNormalizationScheme struct {
	Scheme string
}

func (e *UnsupportedNormalizationScheme) Error() string {
	return fmt.Sprintf("unsupported normalization scheme %q", e.Scheme)
}

// GpuSubkind distinguishes the stage of the GPU pipeline that failed.
type GpuSubkind string

const (
	GpuDevice        GpuSubkind = "Device"
	GpuQueue         GpuSubkind = "Queue"
	GpuLibraryLoad   GpuSubkind = "LibraryLoad"
	GpuKernelLookup  GpuSubkind = "KernelLookup"
	GpuBufferAlloc   GpuSubkind = "BufferAlloc"
	GpuCommandBuffer GpuSubkind = "CommandBuffer"
)

// GpuBackendError is the only error kind the GPU backend variant may
// produce; the CPU path never produces it (spec.md §7).
type GpuBackendError struct {
	Subkind GpuSubkind
	Detail  string
}

func (e *GpuBackendError) Error() string {
	return fmt.Sprintf("gpu backend: %s: %s", e.Subkind, e.Detail)
}
