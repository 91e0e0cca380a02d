package core

import "errors"

// The client distinguishes three failure categories. ValidationError covers
// bad input the client can detect (or the server reports as such); the action
// is rejected before or instead of retrying. AuthError covers bad credentials
// and rejected tokens; a rejected token is not retryable and forces a session
// clear. NetworkError covers transport failures and non-2xx responses without
// a structured error body.

// ValidationError reports client-detectable bad input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError reports failed authentication: invalid credentials on login, or a
// write rejected for a missing/invalid token.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string {
	if e.Msg == "" {
		return "authentication required"
	}
	return e.Msg
}

// NetworkError reports a transport failure or an unstructured server error.
type NetworkError struct {
	Msg string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
