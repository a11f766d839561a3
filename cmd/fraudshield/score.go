package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single transaction",
		Long: `Submit one transaction to the scoring service and print its verdict.

Unset flags take the console defaults; hour and weekday default to now.

Examples:
  fraudshield score --customer CUST-042 --amount 980.50 --channel atm
  fraudshield score --amount 15000 --account-age 3 --kyc=false --hour 3`,
		Args: cobra.NoArgs,
		RunE: runScore,
	}

	cmd.Flags().String("customer", model.DefaultCustomerID, "customer id")
	cmd.Flags().String("amount", strconv.FormatFloat(model.DefaultAmount, 'f', -1, 64), "transaction amount")
	cmd.Flags().String("account-age", strconv.Itoa(model.DefaultAccountAgeDays), "account age in days")
	cmd.Flags().String("channel", string(model.DefaultChannel), "channel (atm, online, pos, mobile, web)")
	cmd.Flags().Bool("kyc", true, "customer passed KYC verification")
	cmd.Flags().String("hour", "", "hour of day, 0-23 (default: now)")
	cmd.Flags().String("weekday", "", "weekday, 0-6 with Sunday = 0 (default: today)")

	return cmd
}

// draftFlags maps score flags to the draft fields they edit.
var draftFlags = []struct {
	name  string
	field model.Field
}{
	{"customer", model.FieldCustomerID},
	{"amount", model.FieldTransactionAmount},
	{"account-age", model.FieldAccountAgeDays},
	{"channel", model.FieldChannel},
	{"kyc", model.FieldKYCVerified},
	{"hour", model.FieldHour},
	{"weekday", model.FieldWeekday},
}

// draftFromFlags starts from the default draft and applies every flag the
// operator set, with the same coercion the console form uses.
func draftFromFlags(cmd *cobra.Command, now time.Time) (model.Draft, error) {
	draft := model.NewDraft(now, model.NewTransactionID())

	for _, f := range draftFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		raw := cmd.Flags().Lookup(f.name).Value.String()
		next, err := draft.Apply(model.Edit{Field: f.field, Raw: raw})
		if err != nil {
			return model.Draft{}, common.NewUserError(fmt.Sprintf("--%s: %v", f.name, err), err)
		}
		draft = next
	}

	if err := draft.Validate(); err != nil {
		return model.Draft{}, common.NewUserError(err.Error(), err)
	}
	return draft, nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	draft, err := draftFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	_, client, err := loadClient()
	if err != nil {
		return err
	}

	verdict, err := client.SubmitTransaction(cmd.Context(), draft)
	if err != nil {
		return serviceError("Prediction failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderVerdict(viewmodel.PresentVerdict(verdict)))
	return nil
}
