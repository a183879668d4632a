package core

import (
	"errors"
	"fmt"
)

// LoadErrorKind classifies why a channel image could not be loaded
type LoadErrorKind int

const (
	NotFound LoadErrorKind = iota + 1
	UnsupportedFormat
	BitDepth
	DimensionMismatch
	Corrupt
)

func (k LoadErrorKind) String() string {
	switch k {
	case NotFound:
		return "file not found"
	case UnsupportedFormat:
		return "unsupported format"
	case BitDepth:
		return "not a 16-bit single-channel image"
	case DimensionMismatch:
		return "dimension mismatch"
	case Corrupt:
		return "corrupt image"
	default:
		return "load error"
	}
}

// Sentinels for errors.Is checks against a LoadError's kind
var (
	ErrNotFound          = errors.New(NotFound.String())
	ErrUnsupportedFormat = errors.New(UnsupportedFormat.String())
	ErrBitDepth          = errors.New(BitDepth.String())
	ErrDimensionMismatch = errors.New(DimensionMismatch.String())
	ErrCorrupt           = errors.New(Corrupt.String())
)

// LoadError is returned by the image loader for any failed load
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

// NewLoadError wraps err with a path and kind
func NewLoadError(path string, kind LoadErrorKind, err error) *LoadError {
	return &LoadError{Path: path, Kind: kind, Err: err}
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrUnsupportedFormat:
		return e.Kind == UnsupportedFormat
	case ErrBitDepth:
		return e.Kind == BitDepth
	case ErrDimensionMismatch:
		return e.Kind == DimensionMismatch
	case ErrCorrupt:
		return e.Kind == Corrupt
	}
	return false
}
