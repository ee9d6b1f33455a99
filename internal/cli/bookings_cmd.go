package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aoemotors/leaddesk/internal/cli/formatter"
	"github.com/aoemotors/leaddesk/internal/service"
)

func newBookingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List and update test-drive bookings",
	}

	cmd.AddCommand(
		newBookingsListCmd(app),
		newBookingsUpdateCmd(app),
	)

	return cmd
}

func newBookingsListCmd(app *App) *cobra.Command {
	var location, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ListBookingsRequest{Location: location}

			var err error
			if req.From, err = parseWhen(from); err != nil {
				return fmt.Errorf("parsing --from: %w", err)
			}
			if req.To, err = parseWhen(to); err != nil {
				return fmt.Errorf("parsing --to: %w", err)
			}

			bookings, err := app.Bookings.ListBookings(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBookingTable(bookings))
			return nil
		},
	}

	addLocationFlag(cmd.Flags(), &location, "Restrict to one dealership location")
	cmd.Flags().StringVar(&from, "from", "", "Lower bound, inclusive (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Upper bound, exclusive (RFC3339 or YYYY-MM-DD)")

	return cmd
}

func newBookingsUpdateCmd(app *App) *cobra.Command {
	var field, value string

	cmd := &cobra.Command{
		Use:   "update <booking-id>",
		Short: "Update one editable booking field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bookings.UpdateField(cmd.Context(), args[0], field, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of %s.\n", field, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Field to change: action_status, sales_notes or lead_score")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

// parseWhen reads a bound flag as RFC3339 or a bare date, normalized to UTC.
// An empty flag means no bound.
func parseWhen(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("want RFC3339 or YYYY-MM-DD, got %q", s)
	}
	t = t.UTC()
	return &t, nil
}
