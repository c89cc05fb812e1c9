package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"keylink/internal/services/vault"
)

// list: print entry names, optionally restricted by --filter.
func listCmd() *cobra.Command {
	var (
		filter string
		raw    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries known to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := connect(ctx); err != nil {
				return err
			}

			var (
				text string
				err  error
			)
			if filter != "" {
				text, err = appCtx.FetchFiltered(ctx, filter)
			} else {
				text, err = appCtx.FetchAll(ctx)
			}
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printEntries(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only entries whose name contains this text")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the daemon's response as received")
	return cmd
}

func printEntries(w io.Writer, text string) error {
	entries, err := vault.ParseEntries(text)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no entries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s (username: %s)\n", e.Name, e.User)
	}
	return nil
}
