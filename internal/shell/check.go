package shell

import "errors"

// detailsSeparator joins the context message and the shell detail.
const detailsSeparator = " | details from shell: "

// CommandError is returned by Check when an executor call failed.
type CommandError struct {
	// Message says what the caller was trying to do.
	Message string
	// Details is the raw text reported by the shell.
	Details string
	// Err is the executor error the details came from.
	Err error
}

func (e *CommandError) Error() string {
	return e.Message + detailsSeparator + e.Details
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Check must be called with the result of every executor call that can fail.
// It returns nil for a nil err and a *CommandError otherwise.
func Check(message string, err error) error {
	if err == nil {
		return nil
	}

	details := err.Error()

	var runErr *RunError
	if errors.As(err, &runErr) && runErr.Stderr != "" {
		details = runErr.Stderr
	}

	return &CommandError{
		Message: message,
		Details: details,
		Err:     err,
	}
}
