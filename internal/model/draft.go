package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("invalid transaction draft")

// Channel is the medium a transaction was made through.
type Channel string

// Supported channels, in the order the intake form cycles through them.
const (
	ChannelATM    Channel = "atm"
	ChannelOnline Channel = "online"
	ChannelPOS    Channel = "pos"
	ChannelMobile Channel = "mobile"
	ChannelWeb    Channel = "web"
)

// Channels lists every valid channel.
var Channels = []Channel{ChannelATM, ChannelOnline, ChannelPOS, ChannelMobile, ChannelWeb}

// ParseChannel converts operator input into a Channel.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Channels {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// Label returns the display name of the channel.
func (c Channel) Label() string {
	switch c {
	case ChannelATM, ChannelPOS:
		return strings.ToUpper(string(c))
	default:
		if c == "" {
			return ""
		}
		return strings.ToUpper(string(c[:1])) + string(c[1:])
	}
}

// Shift returns the channel offset positions away, wrapping around.
func (c Channel) Shift(offset int) Channel {
	idx := 0
	for i, known := range Channels {
		if known == c {
			idx = i
			break
		}
	}
	n := len(Channels)
	return Channels[((idx+offset)%n+n)%n]
}

// Field identifies one operator-editable field of a Draft.
type Field int

// Editable draft fields. TransactionID is deliberately absent: it is owned by
// the submit path.
const (
	FieldCustomerID Field = iota
	FieldTransactionAmount
	FieldAccountAgeDays
	FieldChannel
	FieldKYCVerified
	FieldHour
	FieldWeekday
)

// Fields lists the editable fields in form order.
var Fields = []Field{
	FieldCustomerID,
	FieldTransactionAmount,
	FieldAccountAgeDays,
	FieldChannel,
	FieldKYCVerified,
	FieldHour,
	FieldWeekday,
}

// String returns the form label of the field.
func (f Field) String() string {
	switch f {
	case FieldCustomerID:
		return "Customer ID"
	case FieldTransactionAmount:
		return "Amount ($)"
	case FieldAccountAgeDays:
		return "Account Age (Days)"
	case FieldChannel:
		return "Channel"
	case FieldKYCVerified:
		return "KYC Verified"
	case FieldHour:
		return "Hour"
	case FieldWeekday:
		return "Weekday"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ValidationError describes a draft field that cannot be accepted.
type ValidationError struct {
	Reason string
	Field  Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(f Field, format string, args ...any) error {
	return &ValidationError{Field: f, Reason: fmt.Sprintf(format, args...)}
}

// Edit replaces a single draft field with raw operator input.
type Edit struct {
	Raw   string
	Field Field
}

// Draft is the transaction record the operator edits before submission.
// Every field always holds a value.
type Draft struct {
	TransactionID     string
	CustomerID        string
	Channel           Channel
	TransactionAmount float64
	AccountAgeDays    int
	Hour              int
	Weekday           int
	KYCVerified       bool
}

// Draft defaults.
const (
	DefaultCustomerID     = "CUST-001"
	DefaultAccountAgeDays = 365
	DefaultAmount         = 50.0
	DefaultChannel        = ChannelOnline
)

// NewDraft seeds a draft from the wall clock and placeholder identity.
func NewDraft(now time.Time, transactionID string) Draft {
	return Draft{
		TransactionID:     transactionID,
		CustomerID:        DefaultCustomerID,
		AccountAgeDays:    DefaultAccountAgeDays,
		TransactionAmount: DefaultAmount,
		Channel:           DefaultChannel,
		KYCVerified:       true,
		Hour:              now.Hour(),
		Weekday:           int(now.Weekday()),
	}
}

// NewTransactionID returns a fresh client-side transaction identifier.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// Regenerate returns a copy of the draft whose TransactionID is produced by gen
// and is guaranteed to differ from the current one.
func (d Draft) Regenerate(gen func() string) Draft {
	id := gen()
	for i := 1; id == "" || id == d.TransactionID; i++ {
		id = fmt.Sprintf("%s-%d", gen(), i)
	}
	d.TransactionID = id
	return d
}

// KYCFlag returns the wire representation of KYCVerified.
func (d Draft) KYCFlag() int {
	if d.KYCVerified {
		return 1
	}
	return 0
}

// Value returns the raw text form of a field, suitable for seeding an input.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldCustomerID:
		return d.CustomerID
	case FieldTransactionAmount:
		return strconv.FormatFloat(d.TransactionAmount, 'f', -1, 64)
	case FieldAccountAgeDays:
		return strconv.Itoa(d.AccountAgeDays)
	case FieldChannel:
		return string(d.Channel)
	case FieldKYCVerified:
		return strconv.FormatBool(d.KYCVerified)
	case FieldHour:
		return strconv.Itoa(d.Hour)
	case FieldWeekday:
		return strconv.Itoa(d.Weekday)
	default:
		return ""
	}
}

// Apply coerces e.Raw with the target field's rule and returns the draft with
// exactly that field replaced. On error the original draft is returned.
func (d Draft) Apply(e Edit) (Draft, error) {
	next := d
	switch e.Field {
	case FieldCustomerID:
		next.CustomerID = strings.TrimSpace(e.Raw)

	case FieldTransactionAmount:
		v, err := coerceFloat(e.Raw)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return d, invalid(e.Field, "must be a non-negative amount, got %q", e.Raw)
		}
		next.TransactionAmount = v

	case FieldAccountAgeDays:
		v, err := coerceInt(e.Raw)
		if err != nil || v < 0 {
			return d, invalid(e.Field, "must be a non-negative whole number, got %q", e.Raw)
		}
		next.AccountAgeDays = v

	case FieldChannel:
		c, err := ParseChannel(e.Raw)
		if err != nil {
			return d, invalid(e.Field, "%v", err)
		}
		next.Channel = c

	case FieldKYCVerified:
		next.KYCVerified = truthy(e.Raw)

	case FieldHour:
		v, err := coerceInt(e.Raw)
		if err != nil || v < 0 || v > 23 {
			return d, invalid(e.Field, "must be between 0 and 23, got %q", e.Raw)
		}
		next.Hour = v

	case FieldWeekday:
		v, err := coerceInt(e.Raw)
		if err != nil || v < 0 || v > 6 {
			return d, invalid(e.Field, "must be between 0 and 6, got %q", e.Raw)
		}
		next.Weekday = v

	default:
		return d, invalid(e.Field, "not editable")
	}
	return next, nil
}

// Validate checks the constraints a draft must meet before it is submitted.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.CustomerID) == "":
		return invalid(FieldCustomerID, "is required")
	case d.TransactionAmount < 0 || math.IsNaN(d.TransactionAmount) || math.IsInf(d.TransactionAmount, 0):
		return invalid(FieldTransactionAmount, "must be a non-negative amount")
	case d.AccountAgeDays < 0:
		return invalid(FieldAccountAgeDays, "must not be negative")
	case d.Hour < 0 || d.Hour > 23:
		return invalid(FieldHour, "must be between 0 and 23")
	case d.Weekday < 0 || d.Weekday > 6:
		return invalid(FieldWeekday, "must be between 0 and 6")
	}
	if _, err := ParseChannel(string(d.Channel)); err != nil {
		return invalid(FieldChannel, "%v", err)
	}
	return nil
}

// Partial numeric input (an emptied field) coerces to zero.
func coerceFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func coerceInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
