package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

func newExportCmd(app *App) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Export bookings to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Bookings.ExportRows(cmd.Context(), location)
			if err != nil {
				return err
			}

			f := excelize.NewFile()
			defer f.Close()
			sheet := f.GetSheetName(0)
			for i := range rows {
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
					return fmt.Errorf("writing row %d: %w", i+1, err)
				}
			}
			if err := f.SaveAs(args[0]); err != nil {
				return fmt.Errorf("saving %s: %w", args[0], err)
			}

			// The first row is the header.
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d booking(s) to %s.\n", len(rows)-1, args[0])
			return nil
		},
	}

	addLocationFlag(cmd.Flags(), &location, "Restrict the export to one dealership location")

	return cmd
}
