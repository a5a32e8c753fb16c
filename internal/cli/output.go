package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/scigolib/nwb/internal/config"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Integrity check failed or the version is unsupported
	ExitCommandError = 2 // Command error (unreadable file, bad configuration, etc.)
)

// Error codes reported in structured output.
const (
	ErrCodeOpen   = "E001" // container cannot be opened
	ErrCodeRead   = "E002" // container cannot be read
	ErrCodeOutput = "E003" // output cannot be written
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope of JSON and YAML output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// OutputFormatter writes command results as text, JSON or YAML.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success writes data. Text output is delegated to text; JSON and YAML
// wrap data in a CLIResponse.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == config.FormatText {
		return text(f.Writer)
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error writes an error report in the configured format.
func (f *OutputFormatter) Error(code, message string, cause error) error {
	if f.Format == config.FormatText {
		_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		return err
	}
	resp := CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message}}
	if cause != nil {
		resp.Error.Details = cause.Error()
	}
	return f.encode(resp)
}

// Fail reports a command error and returns the matching ExitError.
func (f *OutputFormatter) Fail(code, message string, cause error) error {
	if err := f.Error(code, message, cause); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return WrapExitError(ExitCommandError, message, cause)
}

func (f *OutputFormatter) encode(v CLIResponse) error {
	switch f.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", f.Format)
	}
}
