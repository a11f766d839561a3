package components

import (
	"errors"
	"fmt"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/scoring"
)

// failureText is the one-line reason a fetch view shows for a failed state.
func failureText(err error) string {
	var svcErr *scoring.ServiceError
	switch {
	case common.IsTransient(err):
		return "scoring service unreachable"
	case errors.As(err, &svcErr) && svcErr.Status != 0:
		return fmt.Sprintf("scoring service returned HTTP %d", svcErr.Status)
	case errors.Is(err, common.ErrService):
		return "scoring service returned an unreadable response"
	default:
		return common.UserMessage(err, "unexpected error")
	}
}
