package cli

import (
	"log/slog"
	"os"

	"smartphones/services/smartphone-cli/internal/client"
	"smartphones/services/smartphone-cli/internal/store"
	"smartphones/services/smartphone-cli/internal/view"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL  string
	Verbose bool

	// NewAPI builds the API backend (overridable in tests).
	NewAPI func(baseURL string) (store.API, error)
}

func defaultAPI(baseURL string) (store.API, error) {
	return client.New(baseURL)
}

// NewRootCommand creates the root command. apiURL is the configured default.
func NewRootCommand(apiURL string) *cobra.Command {
	return newRootCommand(&RootOptions{NewAPI: defaultAPI}, apiURL)
}

func newRootCommand(opts *RootOptions, apiURL string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "smartphones",
		Short:         "Manage smartphone records",
		Long:          "Command-line front end for the smartphone management API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", apiURL, "smartphones collection URL")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}

func (o *RootOptions) router() (*view.Router, error) {
	api, err := o.NewAPI(o.APIURL)
	if err != nil {
		return nil, err
	}
	slog.Debug("using API", "url", o.APIURL)
	return view.NewRouter(store.New(api)), nil
}
