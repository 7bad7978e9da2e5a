package config

import (
	"errors"
	"fmt"
)

// ErrLoad classifies a configuration file that exists but cannot be used.
// Use errors.Is(err, ErrLoad) instead of string matching.
var ErrLoad = errors.New("configuration unusable")

// LoadError reports why the configuration at Path could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// WriteBackError reports a failure to persist a corrected configuration.
// It never aborts a run; the in-memory configuration stays in use.
type WriteBackError struct {
	Path string
	Err  error
}

func (e *WriteBackError) Error() string {
	return fmt.Sprintf("writing corrected config %s: %v", e.Path, e.Err)
}

func (e *WriteBackError) Unwrap() error { return e.Err }
