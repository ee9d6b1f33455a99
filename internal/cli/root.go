package cli

import (
	"github.com/spf13/cobra"

	"github.com/aoemotors/leaddesk/internal/server"
	"github.com/aoemotors/leaddesk/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Bookings  service.BookingService
	Analytics service.AnalyticsService
	Outreach  service.OutreachService

	// HTTPAddr and ServerOpts configure the serve command.
	HTTPAddr   string
	ServerOpts server.Options
}

// NewRootCmd creates the top-level "leaddesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "leaddesk",
		Short: "Test-drive lead desk for AOE Motors dealerships",
	}

	root.AddCommand(
		newServeCmd(app),
		newAskCmd(app),
		newBookingsCmd(app),
		newEmailCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
