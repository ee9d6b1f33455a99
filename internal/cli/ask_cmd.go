package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aoemotors/leaddesk/internal/service"
)

func newAskCmd(app *App) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Answer an analytics question over the bookings",
		Long:  `Ask a free-text question such as "hot leads last week" or "total converted leads today". Unrecognized questions get a clarifying message, never an error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Analytics.Ask(cmd.Context(), service.AskRequest{
				Question:       args[0],
				ActiveLocation: location,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Answer)
			return nil
		},
	}

	addLocationFlag(cmd.Flags(), &location, "Active location filter the question composes with")

	return cmd
}
