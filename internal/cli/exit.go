package cli

import "fmt"

// ExitError is an error that carries a specific process exit code.
// Commands return it from RunE; main turns it into os.Exit.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitConfig = 2 // configuration is missing or invalid
	ExitInput  = 3 // an input file could not be read or parsed
)

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
