package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roach88/matapex/internal/config"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // Config load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Config build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeReadFailed  = "E008" // Input read error
	ErrCodeRuleFailed  = "E009" // One or more rules failed during a rewrite

	ErrCodeInvalidRules = "E301" // Rule set ordering or naming error
)

// loadConfig loads the CUE configuration at path, or the defaults when path
// is empty. Problems are returned as config errors, never as exit errors.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// configErrorCode returns the code a configuration error is reported with.
// Several problems report the code of the first one.
func configErrorCode(err error) string {
	errs := config.Errors(err)
	if len(errs) == 0 {
		return ErrCodeGeneric
	}
	return errs[0].Code
}

// openInput opens the named file, or returns stdin when path is empty or "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: input file not found: %s", ErrCodeNotFound, path))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: cannot open input", ErrCodeReadFailed), err)
	}
	return f, nil
}
