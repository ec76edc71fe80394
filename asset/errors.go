package asset

import (
	"errors"
	"fmt"
)

// Code classifies an image loading failure
type Code int

const (
	InvalidArgs Code = iota + 1
	OpenFailed
	InvalidFile
	NoMemory
	NullImage
	InvalidSize
	ColorFailed
	ColorError
	Unknown
)

var codeNames = map[Code]string{
	InvalidArgs: "invalid arguments",
	OpenFailed:  "open failed",
	InvalidFile: "invalid file",
	NoMemory:    "out of memory",
	NullImage:   "null image",
	InvalidSize: "invalid size",
	ColorFailed: "color allocation failed",
	ColorError:  "color error",
	Unknown:     "unknown error",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// LoadError reports why an image could not be loaded
type LoadError struct {
	Code     Code
	Filename string
	Err      error
}

// Sentinels for errors.Is; they match any LoadError with the same code
var (
	ErrInvalidArgs = &LoadError{Code: InvalidArgs}
	ErrOpenFailed  = &LoadError{Code: OpenFailed}
	ErrInvalidFile = &LoadError{Code: InvalidFile}
	ErrNoMemory    = &LoadError{Code: NoMemory}
	ErrNullImage   = &LoadError{Code: NullImage}
	ErrInvalidSize = &LoadError{Code: InvalidSize}
	ErrColorFailed = &LoadError{Code: ColorFailed}
	ErrColorError  = &LoadError{Code: ColorError}
	ErrUnknown     = &LoadError{Code: Unknown}
)

func newLoadError(code Code, filename string, err error) *LoadError {
	return &LoadError{Code: code, Filename: filename, Err: err}
}

func (e *LoadError) Error() string {
	msg := "asset: " + e.Code.String()
	if e.Filename != "" {
		msg += fmt.Sprintf(" (%s)", e.Filename)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches on code alone, so errors.Is(err, ErrOpenFailed) holds for any file
func (e *LoadError) Is(target error) bool {
	var t *LoadError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}
