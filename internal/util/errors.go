package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout erpgrid
var (
	ErrUnsupportedFormat = errors.New("unsupported record file format")
	ErrUnsupportedDSN    = errors.New("unsupported database url")
	ErrNotConnected      = errors.New("not connected to database")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUploadCanceled    = errors.New("upload canceled")
)

// ErpError is a structured error with context and suggestions
type ErpError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *ErpError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Title + ": " + e.Err.Error()
	}
	return e.Title
}

func (e *ErpError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *ErpError) Format() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: %s\n", e.Title)

	if e.Message != "" {
		fmt.Fprintf(&sb, "\n  %s\n", e.Message)
	} else if e.Err != nil {
		fmt.Fprintf(&sb, "\n  %s\n", e.Err)
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, "\n  %s\n", e.Context)
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			fmt.Fprintf(&sb, "    • %s\n", cause)
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			fmt.Fprintf(&sb, "    $ %s\n", sug)
		}
	}

	return sb.String()
}

// NewError creates a new ErpError
func NewError(title string) *ErpError {
	return &ErpError{Title: title}
}

// WithMessage adds a detailed message
func (e *ErpError) WithMessage(msg string) *ErpError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *ErpError) WithContext(ctx string) *ErpError {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *ErpError) WithCause(cause string) *ErpError {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithCauses adds multiple possible causes
func (e *ErpError) WithCauses(causes ...string) *ErpError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *ErpError) WithSuggestion(sug string) *ErpError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *ErpError) WithSuggestions(sugs ...string) *ErpError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *ErpError) Wrap(err error) *ErpError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// SourceError reports a record file that could not be loaded.
func SourceError(path string, err error) *ErpError {
	return NewError("Cannot load records").
		WithContext(path).
		WithCauses(
			"The file does not exist or is not readable",
			"The file is not valid JSON, YAML or TOML",
		).
		WithSuggestions(
			"erpgrid config source.path <file>   # Point at another file",
			"erpgrid leads                       # Use the built-in sample data",
		).
		Wrap(err)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *ErpError {
	return NewError("Cannot connect to database").
		WithContext(RedactURL(url)).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"The leads, approvals or employees tables are missing",
		).
		WithSuggestions(
			"erpgrid config source.database_url   # Check the configured url",
		).
		Wrap(err)
}

// UnknownColumnError lists the columns a flag could have named.
func UnknownColumnError(flag, key string, valid []string) *ErpError {
	return NewError(fmt.Sprintf("Unknown column '%s' in --%s", key, flag)).
		WithMessage("Valid columns: " + strings.Join(valid, ", "))
}

// InvalidFlagError wraps a flag value that failed to parse.
func InvalidFlagError(flag, value string, err error) *ErpError {
	return NewError(fmt.Sprintf("Invalid value for --%s: %q", flag, value)).Wrap(err)
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *ErpError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}

// TooManyArgumentsError returns an error for too many arguments
func TooManyArgumentsError(expected int, got int) *ErpError {
	return NewError(fmt.Sprintf("Too many arguments: expected %d, got %d", expected, got))
}
