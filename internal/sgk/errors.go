package sgk

import "fmt"

// AuthError means the upstream login was rejected or returned no token.
// Callers must not proceed to follow-up calls when this is returned.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("sgk login failed (kod %d): %s", e.Code, e.Message)
}

// BusinessError is a non-zero, non-auth result code from a data or write
// operation. It is a structured failure, not a transport fault.
type BusinessError struct {
	Operation string
	Code      int
	Message   string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("sgk %s failed (kod %d): %s", e.Operation, e.Code, e.Message)
}

// TransportError wraps a network, timeout or HTTP-level failure reaching
// the upstream service.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sgk %s transport failure: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
