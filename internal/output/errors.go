package output

// Exit codes following sysexits.h convention
const (
	ExitOK          = 0  // Success
	ExitGeneral     = 1  // General error
	ExitUsage       = 2  // Invalid usage / bad arguments
	ExitAuth        = 3  // Identity rejected or store could not be decrypted
	ExitNotFound    = 4  // Store or configuration not found
	ExitConflict    = 5  // Conflict (store or credential already exists)
	ExitForbidden   = 6  // Permission denied
	ExitConfigError = 10 // Configuration error
	ExitDataError   = 65 // Malformed input data (EX_DATAERR from sysexits.h)
	ExitIOError     = 74 // I/O error (EX_IOERR from sysexits.h)
	ExitTempFail    = 75 // Store locked by another process (EX_TEMPFAIL from sysexits.h)
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
	Err      error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// WithCause records the error this CLIError was built from
func (e *CLIError) WithCause(err error) *CLIError {
	e.Err = err
	return e
}
