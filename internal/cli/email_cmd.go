package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aoemotors/leaddesk/internal/cli/formatter"
)

func newEmailCmd(app *App) *cobra.Command {
	var emailType string
	var send bool

	cmd := &cobra.Command{
		Use:   "email <booking-id>",
		Short: "Draft or send an outreach email for a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if !send {
				draft, err := app.Outreach.DraftEmail(cmd.Context(), args[0], emailType)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatDraft(draft))
				return nil
			}

			result, err := app.Outreach.SendEmail(cmd.Context(), args[0], emailType)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Sent %q to %s.\n", result.Draft.Subject, result.Recipient)
			if result.StatusUpdated {
				fmt.Fprintln(out, formatter.Dim("Booking moved to Converted."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&emailType, "type", "", "Email type: followup, lost or welcome")
	cmd.Flags().BoolVar(&send, "send", false, "Deliver the email instead of printing the draft")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
