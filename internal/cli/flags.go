package cli

import "github.com/spf13/pflag"

// addLocationFlag registers the --location flag shared by the commands that
// can scope their work to one dealership.
func addLocationFlag(fs *pflag.FlagSet, p *string, usage string) {
	fs.StringVar(p, "location", "", usage)
}
