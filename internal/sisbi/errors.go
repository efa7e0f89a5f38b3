package sisbi

import "fmt"

// TransportError reports a failed upstream request. StatusCode is 0 when no
// response was received.
type TransportError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sisbi %s: unexpected status %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("sisbi %s: request failed: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports an upstream body that is not valid JSON of the expected shape.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sisbi %s: decode payload: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
