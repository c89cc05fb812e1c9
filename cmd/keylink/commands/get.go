package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"keylink/internal/services/vault"
)

// get: print one entry, password included.
func getCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a single entry including its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := connect(ctx); err != nil {
				return err
			}
			text, err := appCtx.FetchDecrypted(ctx, args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printEntry(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the daemon's response as received")
	return cmd
}

func printEntry(w io.Writer, text string) error {
	e, err := vault.ParseEntry(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "name:     %s\n", e.Name)
	fmt.Fprintf(w, "username: %s\n", e.User)
	fmt.Fprintf(w, "password: %s\n", e.Pass)
	if e.URL != "" {
		fmt.Fprintf(w, "url:      %s\n", e.URL)
	}
	if e.Desc != "" {
		fmt.Fprintf(w, "desc:     %s\n", e.Desc)
	}
	return nil
}
