// Package errors provides error handling and the warning system used across
// the pa3030 pipelines. Two kinds of failures exist here: fatal precondition
// errors (missing input file, missing target column) that abort a run, and
// best-effort integration failures that are reported as warnings and bypassed.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("pa3030-warning: %v\n", w)
	}
	// zerolog hook, set lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler overrides how non-fatal warnings are reported.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog logger.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn reports a non-fatal warning. The run continues.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// TrackingWarning is raised when the experiment-tracking integration cannot
// be initialized or a log call fails. The pipeline proceeds without it.
type TrackingWarning struct {
	Stage  string
	Reason string
}

func (w *TrackingWarning) Error() string {
	return fmt.Sprintf("experiment tracking %s failed: %s (continuing without tracking)", w.Stage, w.Reason)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *TrackingWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("stage", w.Stage).
		Str("reason", w.Reason).
		Str("type", "TrackingWarning")
}

// NewTrackingWarning creates a new TrackingWarning.
func NewTrackingWarning(stage, reason string) *TrackingWarning {
	return &TrackingWarning{Stage: stage, Reason: reason}
}

// DataConversionWarning is raised when numeric values are narrowed during
// loading, e.g. the float64 to float32 downcast of covariate columns.
type DataConversionWarning struct {
	Column   string
	FromType string
	ToType   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("column %q converted from %s to %s", w.Column, w.FromType, w.ToType)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning creates a new DataConversionWarning.
func NewDataConversionWarning(column, from, to string) *DataConversionWarning {
	return &DataConversionWarning{Column: column, FromType: from, ToType: to}
}

// MissingColumnError is a fatal precondition failure: a column the pipeline
// depends on (target, year) is absent from the loaded dataset.
type MissingColumnError struct {
	Column string
	Path   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("pa3030: required column %q not found in %s", e.Column, e.Path)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *MissingColumnError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("path", e.Path).
		Str("type", "MissingColumnError")
}

// NewMissingColumnError creates a MissingColumnError with a stacktrace.
func NewMissingColumnError(column, path string) error {
	err := &MissingColumnError{Column: column, Path: path}
	return errors.WithStack(err)
}

// InputNotFoundError is a fatal precondition failure: none of the candidate
// locations for an input file exist.
type InputNotFoundError struct {
	Name       string
	Candidates []string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("pa3030: %s not found in expected locations %v", e.Name, e.Candidates)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InputNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", e.Name).
		Strs("candidates", e.Candidates).
		Str("type", "InputNotFoundError")
}

// NewInputNotFoundError creates an InputNotFoundError with a stacktrace.
func NewInputNotFoundError(name string, candidates []string) error {
	err := &InputNotFoundError{Name: name, Candidates: candidates}
	return errors.WithStack(err)
}

// RasterFormatError reports a raster that violates the discrete land-cover
// contract (wrong dtype, values outside {0,1}, band-sum invariant broken).
type RasterFormatError struct {
	Path   string
	Reason string
}

func (e *RasterFormatError) Error() string {
	return fmt.Sprintf("pa3030: %s: %s", e.Path, e.Reason)
}

// NewRasterFormatError creates a RasterFormatError with a stacktrace.
func NewRasterFormatError(path, reason string) error {
	err := &RasterFormatError{Path: path, Reason: reason}
	return errors.WithStack(err)
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stacktrace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stacktrace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stacktrace.
func WithStack(err error) error {
	return errors.WithStack(err)
}
