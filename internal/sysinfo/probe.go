package sysinfo

// Source tells where a probe's value came from.
type Source int

const (
	// SourcePrimary is the probe's preferred source.
	SourcePrimary Source = iota
	// SourcePlatform is a less specific platform-reported equivalent.
	SourcePlatform
	// SourceSentinel is a fixed placeholder such as "Unknown".
	SourceSentinel
	// SourceDefault is a safe default value.
	SourceDefault
)

// String returns the source name for logs.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourcePlatform:
		return "platform"
	case SourceSentinel:
		return "sentinel"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Result is a probe outcome. Value is always usable; Err records why a
// fallback was taken, if any.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Degraded reports whether the value is a fallback.
func (r Result[T]) Degraded() bool {
	return r.Source != SourcePrimary
}

func primary[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourcePrimary}
}

func fallback[T any](v T, src Source, err error) Result[T] {
	return Result[T]{Value: v, Source: src, Err: err}
}

const (
	unknown      = "Unknown"
	notAvailable = "Not available"
	sameInternal = "Same as internal"
)
