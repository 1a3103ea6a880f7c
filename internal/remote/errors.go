package remote

import "fmt"

// NetworkError is a transport-level failure or a non-2xx response. StatusCode
// is zero when no response was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %s", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the payload was not JSON of the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
