// Package errs defines the error taxonomy shared by the codeparams,
// seedgen, keygen, matcache and paramio packages: ConfigurationError,
// IOError and SingularMatrixError. A cryptographic reject is not part
// of this taxonomy — verifier.Verify reports it as a boolean result,
// never as an error.
package errs

import "fmt"

// ConfigurationError reports invalid (n, k, d) parameters or a missing
// parameter file required by the caller. Operations abort before any
// cryptographic work is attempted.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Msg }

// NewConfigurationError builds a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// IOError wraps a failure to read or write a required file: a message
// file, signature file, or a cache entry that is present but corrupt.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("io error: %v", e.Err)
	}
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err with the path that caused it.
func NewIOError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Path: path, Err: err}
}

// SingularMatrixError reports that RREF hit an all-zero pivot column
// with no row to swap in. make_systematic tolerates partial progress;
// RREF is the only place this is fatal, and only when a caller treats
// it as such (keygen does; the signer does not invoke RREF at all).
type SingularMatrixError struct {
	Column int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix: no pivot available at column %d", e.Column)
}
