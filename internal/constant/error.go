package constant

import "fmt"

// Error is the API-facing error contract: a numeric code plus a
// caller-safe message.
type Error interface {
	error
	Code() int
	Message() string
}

type CustomError struct {
	code    int
	message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int { return e.code }

func (e *CustomError) Message() string { return e.message }

// NewError builds an Error from a registered code.
func NewError(code int) Error {
	if msg, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: msg}
	}
	return &CustomError{code: code, message: "unknown error"}
}

// NewErrorWithMessage overrides the registered message, used to echo a
// provider-reported reason where safe to do so.
func NewErrorWithMessage(code int, message string) Error {
	return &CustomError{code: code, message: message}
}

func GetErrorMessage(code int) (string, bool) {
	msg, exists := ErrorMessages[code]
	return msg, exists
}
