package cli

import (
	"github.com/spf13/cobra"

	"github.com/aoemotors/leaddesk/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(app.Bookings, app.Analytics, app.Outreach, app.ServerOpts)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.HTTPAddr, "Listen address")

	return cmd
}
