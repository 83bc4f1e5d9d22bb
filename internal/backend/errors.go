package backend

import (
	"errors"
	"fmt"
)

var ErrMalformedBody = errors.New("malformed response body")

// RemoteError covers every way a backend call can fail: transport errors,
// non-2xx statuses and bodies that do not decode into the expected shape.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("backend %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("backend %s: status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func IsRemoteError(err error) *RemoteError {
	if err == nil {
		return nil
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	return nil
}
