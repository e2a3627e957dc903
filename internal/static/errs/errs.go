package errs

import "errors"

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidSignature    = errors.New("invalid function signature")
	ErrArgumentMismatch    = errors.New("test input does not match function parameters")
	ErrNoTestCases         = errors.New("at least one test case is required")
	ErrSandboxUnavailable  = errors.New("execution service unavailable")
	ErrResultNotFound      = errors.New("result not found")
)
