// Package errors defines Drift's error taxonomy (spec §7): typed errors
// each reporting a code and a human message. ConfigurationError, IOError
// and StoreError also carry an optional hint; the other kinds have none.
// Every kind except CancellationError wraps an underlying cause, so callers can apply the kind-specific propagation
// policy (surface, log-and-skip, or fatal) without string-matching.
package errors

import (
	"fmt"
	"time"
)

// Code identifies one of the taxonomy's error kinds.
type Code string

const (
	CodeConfiguration Code = "configuration"
	CodeIO            Code = "io"
	CodeParse         Code = "parse"
	CodeDetector      Code = "detector"
	CodeGate          Code = "gate"
	CodeStore         Code = "store"
	CodeCancellation  Code = "cancellation"
)

// ConfigurationError covers unknown policy ids, invalid gate configs, and
// malformed rule files. Policy: surface immediately, exit code 2.
type ConfigurationError struct {
	Message    string
	Hint       string
	Underlying error
}

func NewConfigurationError(message string, underlying error) *ConfigurationError {
	return &ConfigurationError{Message: message, Underlying: underlying}
}

func (e *ConfigurationError) WithHint(hint string) *ConfigurationError {
	e.Hint = hint
	return e
}

func (e *ConfigurationError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Underlying)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Underlying }
func (e *ConfigurationError) Code() Code    { return CodeConfiguration }

// IOError covers a missing root, an unreadable file, or a permission
// failure on the store. Policy: per-file errors log and skip; store
// errors are fatal (see StoreError).
type IOError struct {
	Path       string
	Operation  string
	Underlying error
	Hint       string
}

func NewIOError(op, path string, underlying error) *IOError {
	return &IOError{Operation: op, Path: path, Underlying: underlying}
}

func (e *IOError) WithHint(hint string) *IOError {
	e.Hint = hint
	return e
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("io %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
	}
	return fmt.Sprintf("io %s failed: %v", e.Operation, e.Underlying)
}

func (e *IOError) Unwrap() error { return e.Underlying }
func (e *IOError) Code() Code    { return CodeIO }

// ParseError covers a syntax error in source. Policy: downgrade to a
// Diagnostic attached to the file; detectors still run on recoverable
// regions, so this error type never aborts a scan — it is carried
// alongside partial results, not raised.
type ParseError struct {
	FilePath   string
	Line       int
	Column     int
	Token      string
	Underlying error
}

func NewParseError(path string, line, column int, token string, underlying error) *ParseError {
	return &ParseError{FilePath: path, Line: line, Column: column, Token: token, Underlying: underlying}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s:%d:%d (near token %q): %v",
		e.FilePath, e.Line, e.Column, e.Token, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }
func (e *ParseError) Code() Code    { return CodeParse }

// DetectorError covers a regex backtracking blowup or an invariant
// violation inside one detector. Policy: caught per (detector, file);
// that detection is marked failed; execution continues.
type DetectorError struct {
	DetectorID string
	FilePath   string
	Underlying error
}

func NewDetectorError(detectorID, filePath string, underlying error) *DetectorError {
	return &DetectorError{DetectorID: detectorID, FilePath: filePath, Underlying: underlying}
}

func (e *DetectorError) Error() string {
	return fmt.Sprintf("detector %s failed on %s: %v", e.DetectorID, e.FilePath, e.Underlying)
}

func (e *DetectorError) Unwrap() error { return e.Underlying }
func (e *DetectorError) Code() Code    { return CodeDetector }

// GateError covers an uncaught error inside a gate. Policy: mark that
// gate errored; the overall run only fails if the gate is blocking or
// required.
type GateError struct {
	GateName   string
	Underlying error
	Timeout    bool
}

func NewGateError(gateName string, underlying error) *GateError {
	return &GateError{GateName: gateName, Underlying: underlying}
}

func (e *GateError) WithTimeout() *GateError {
	e.Timeout = true
	return e
}

func (e *GateError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("gate %s timed out: %v", e.GateName, e.Underlying)
	}
	return fmt.Sprintf("gate %s errored: %v", e.GateName, e.Underlying)
}

func (e *GateError) Unwrap() error { return e.Underlying }
func (e *GateError) Code() Code    { return CodeGate }

// StoreError covers corruption or a schema mismatch in a pattern,
// constraint, or contract store. Policy: fatal; refuse to scan; the
// Hint should suggest a recovery path (e.g. removing the damaged store file
// under .drift/ and re-running `drift scan`).
type StoreError struct {
	Store      string
	Message    string
	Hint       string
	Underlying error
	Timestamp  time.Time
}

func NewStoreError(store, message string, underlying error) *StoreError {
	return &StoreError{Store: store, Message: message, Underlying: underlying, Timestamp: time.Now()}
}

func (e *StoreError) WithHint(hint string) *StoreError {
	e.Hint = hint
	return e
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s error: %s: %v", e.Store, e.Message, e.Underlying)
}

func (e *StoreError) Unwrap() error { return e.Underlying }
func (e *StoreError) Code() Code    { return CodeStore }

// CancellationError covers a caller-signaled cancellation. Policy:
// terminate cleanly; the caller emits a partial result marked incomplete.
type CancellationError struct {
	Stage string
}

func NewCancellationError(stage string) *CancellationError {
	return &CancellationError{Stage: stage}
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled during %s", e.Stage)
}

func (e *CancellationError) Code() Code { return CodeCancellation }

// Hinter is implemented by every error in the taxonomy and exposes its
// Code. It has no hint accessor, and no reporter renders hints.
type Hinter interface {
	error
	Code() Code
}
