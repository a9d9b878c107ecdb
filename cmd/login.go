package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carteira-cli/carteira/investidor10"
	"github.com/google/subcommands"
)

type loginCmd struct {
	session string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "store the investidor10 session cookie" }
func (*loginCmd) Usage() string {
	return `carteira login [-s <session>]

  Stores the investidor10 laravel_session cookie value for the sync and quote
  commands. Without -s, the value is read from stdin. Get the value from your
  browser's cookies after logging into investidor10.com.br.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.session, "s", "", "the laravel_session cookie value")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session := c.session
	if session == "" {
		fmt.Fprint(os.Stderr, "Paste the laravel_session cookie value: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "Error: no session provided.")
			return subcommands.ExitUsageError
		}
		session = scanner.Text()
	}

	if err := investidor10.SaveSession(session); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Session stored. You can now run 'carteira sync'.")
	return subcommands.ExitSuccess
}
