package scoring

import "fmt"

// ServiceError reports a failed exchange with the scoring service. Err is
// set for transport failures, StatusCode and Body for non-2xx responses.
// These are transient from the caller's point of view; the client never
// retries on its own.
type ServiceError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring service %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scoring service %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *ServiceError) Unwrap() error { return e.Err }
