package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDraft() Draft {
	now := time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC) // Wednesday
	return NewDraft(now, "TXN-0001")
}

func TestNewDraft_Defaults(t *testing.T) {
	d := testDraft()

	assert.Equal(t, "TXN-0001", d.TransactionID)
	assert.Equal(t, "CUST-001", d.CustomerID)
	assert.Equal(t, 365, d.AccountAgeDays)
	assert.InDelta(t, 50.0, d.TransactionAmount, 0.0001)
	assert.Equal(t, ChannelOnline, d.Channel)
	assert.True(t, d.KYCVerified)
	assert.Equal(t, 14, d.Hour)
	assert.Equal(t, 3, d.Weekday)
	assert.NoError(t, d.Validate())
}

func TestDraft_Apply(t *testing.T) {
	tests := []struct {
		name  string
		edit  Edit
		check func(t *testing.T, d Draft)
	}{
		{
			name: "customer id is trimmed",
			edit: Edit{Field: FieldCustomerID, Raw: "  CUST-042 "},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, "CUST-042", d.CustomerID)
			},
		},
		{
			name: "amount parses decimals",
			edit: Edit{Field: FieldTransactionAmount, Raw: "1250.75"},
			check: func(t *testing.T, d Draft) {
				assert.InDelta(t, 1250.75, d.TransactionAmount, 0.0001)
			},
		},
		{
			name: "emptied amount coerces to zero",
			edit: Edit{Field: FieldTransactionAmount, Raw: ""},
			check: func(t *testing.T, d Draft) {
				assert.Zero(t, d.TransactionAmount)
			},
		},
		{
			name: "account age parses integers",
			edit: Edit{Field: FieldAccountAgeDays, Raw: " 12 "},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, 12, d.AccountAgeDays)
			},
		},
		{
			name: "channel is case insensitive",
			edit: Edit{Field: FieldChannel, Raw: "ATM"},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, ChannelATM, d.Channel)
			},
		},
		{
			name: "kyc falsy input",
			edit: Edit{Field: FieldKYCVerified, Raw: "0"},
			check: func(t *testing.T, d Draft) {
				assert.False(t, d.KYCVerified)
				assert.Equal(t, 0, d.KYCFlag())
			},
		},
		{
			name: "kyc unknown input is falsy",
			edit: Edit{Field: FieldKYCVerified, Raw: "maybe"},
			check: func(t *testing.T, d Draft) {
				assert.False(t, d.KYCVerified)
			},
		},
		{
			name: "hour upper bound",
			edit: Edit{Field: FieldHour, Raw: "23"},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, 23, d.Hour)
			},
		},
		{
			name: "weekday lower bound",
			edit: Edit{Field: FieldWeekday, Raw: "0"},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, 0, d.Weekday)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testDraft()
			after, err := before.Apply(tt.edit)
			require.NoError(t, err)
			tt.check(t, after)

			// Every other field is untouched.
			for _, f := range Fields {
				if f == tt.edit.Field {
					continue
				}
				assert.Equal(t, before.Value(f), after.Value(f), "field %s changed", f)
			}
			assert.Equal(t, before.TransactionID, after.TransactionID)
		})
	}
}

func TestDraft_ApplyRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
	}{
		{name: "negative amount", edit: Edit{Field: FieldTransactionAmount, Raw: "-1"}},
		{name: "non numeric amount", edit: Edit{Field: FieldTransactionAmount, Raw: "abc"}},
		{name: "infinite amount", edit: Edit{Field: FieldTransactionAmount, Raw: "Inf"}},
		{name: "fractional age", edit: Edit{Field: FieldAccountAgeDays, Raw: "1.5"}},
		{name: "negative age", edit: Edit{Field: FieldAccountAgeDays, Raw: "-3"}},
		{name: "unknown channel", edit: Edit{Field: FieldChannel, Raw: "fax"}},
		{name: "hour too large", edit: Edit{Field: FieldHour, Raw: "24"}},
		{name: "weekday too large", edit: Edit{Field: FieldWeekday, Raw: "7"}},
		{name: "unknown field", edit: Edit{Field: Field(99), Raw: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testDraft()
			after, err := before.Apply(tt.edit)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.edit.Field, vErr.Field)
			assert.Equal(t, before, after, "draft must be unchanged on a rejected edit")
		})
	}
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *Draft)
		wantField Field
		wantErr   bool
	}{
		{name: "defaults are valid", mutate: func(_ *Draft) {}},
		{name: "empty customer", mutate: func(d *Draft) { d.CustomerID = "" }, wantErr: true, wantField: FieldCustomerID},
		{name: "blank customer", mutate: func(d *Draft) { d.CustomerID = "   " }, wantErr: true, wantField: FieldCustomerID},
		{name: "negative amount", mutate: func(d *Draft) { d.TransactionAmount = -0.01 }, wantErr: true, wantField: FieldTransactionAmount},
		{name: "negative age", mutate: func(d *Draft) { d.AccountAgeDays = -1 }, wantErr: true, wantField: FieldAccountAgeDays},
		{name: "hour out of range", mutate: func(d *Draft) { d.Hour = 25 }, wantErr: true, wantField: FieldHour},
		{name: "weekday out of range", mutate: func(d *Draft) { d.Weekday = -1 }, wantErr: true, wantField: FieldWeekday},
		{name: "bad channel", mutate: func(d *Draft) { d.Channel = "telex" }, wantErr: true, wantField: FieldChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDraft()
			tt.mutate(&d)
			err := d.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestDraft_Regenerate(t *testing.T) {
	t.Run("uses generator output", func(t *testing.T) {
		d := testDraft().Regenerate(func() string { return "TXN-NEW" })
		assert.Equal(t, "TXN-NEW", d.TransactionID)
	})

	t.Run("never reuses the current id", func(t *testing.T) {
		d := testDraft()
		next := d.Regenerate(func() string { return d.TransactionID })
		assert.NotEqual(t, d.TransactionID, next.TransactionID)
		assert.True(t, strings.HasPrefix(next.TransactionID, d.TransactionID))
	})

	t.Run("leaves other fields alone", func(t *testing.T) {
		d := testDraft()
		next := d.Regenerate(NewTransactionID)
		next.TransactionID = d.TransactionID
		assert.Equal(t, d, next)
	})
}

func TestNewTransactionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.True(t, strings.HasPrefix(id, "TXN-"))
		assert.Len(t, id, 14)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "ATM", ChannelATM.Label())
	assert.Equal(t, "Online", ChannelOnline.Label())
	assert.Equal(t, ChannelPOS, ChannelOnline.Shift(1))
	assert.Equal(t, ChannelWeb, ChannelATM.Shift(-1))
	assert.Equal(t, ChannelATM, ChannelWeb.Shift(1))

	_, err := ParseChannel("carrier pigeon")
	assert.Error(t, err)
}

func TestPrediction_IsFraud(t *testing.T) {
	assert.True(t, PredictionFraud.IsFraud())
	assert.False(t, PredictionLegitimate.IsFraud())
	assert.False(t, Prediction("fraud").IsFraud())
}
