package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/fraudshield/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrInvalidVerdict = errors.New("invalid verdict")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateVerdict rejects verdicts that could not have come from a scoring call.
func validateVerdict(v model.Verdict) error {
	if strings.TrimSpace(v.TransactionID) == "" {
		return fmt.Errorf("%w: missing transaction ID", ErrInvalidVerdict)
	}
	switch v.Prediction {
	case model.PredictionFraud, model.PredictionLegitimate:
	default:
		return fmt.Errorf("%w: unknown prediction %q", ErrInvalidVerdict, v.Prediction)
	}
	if math.IsNaN(v.RiskScore) {
		return fmt.Errorf("%w: risk score is NaN", ErrInvalidVerdict)
	}
	return nil
}
