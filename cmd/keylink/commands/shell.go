package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  connect [password]   run the handshake (defaults to -p)
  list                 list all entries
  filter <text>        list entries whose name contains text
  get <name>           show one entry
  reset                drop the session key
  quit                 leave the shell`

// shell: keep one session across many reads.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session against the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, shellHelp)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch verb {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "connect":
			if arg != "" {
				err = appCtx.Connect(ctx, arg)
			} else {
				err = connect(ctx)
			}
		case "reset":
			appCtx.Reset()
		case "list":
			var text string
			if text, err = appCtx.FetchAll(ctx); err == nil {
				err = printEntries(out, text)
			}
		case "filter":
			var text string
			if text, err = appCtx.FetchFiltered(ctx, arg); err == nil {
				err = printEntries(out, text)
			}
		case "get":
			if arg == "" {
				fmt.Fprintln(out, "usage: get <name>")
				continue
			}
			var text string
			if text, err = appCtx.FetchDecrypted(ctx, arg); err == nil {
				err = printEntry(out, text)
			}
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", verb)
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}
