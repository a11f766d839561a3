package scoring

import (
	"fmt"

	"github.com/Veraticus/fraudshield/internal/common"
)

// NetworkError reports a transport-level failure: the request never produced
// an HTTP response.
type NetworkError struct {
	Err error
	Op  string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches common.ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == common.ErrNetwork
}

// ServiceError reports a response the console cannot use: a non-2xx status,
// or a 2xx body that does not match the wire contract (Err is then set).
type ServiceError struct {
	Err    error
	Op     string
	Body   string
	Status int
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches common.ErrService.
func (e *ServiceError) Is(target error) bool {
	return target == common.ErrService
}
