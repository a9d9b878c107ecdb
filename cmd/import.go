package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/carteira-cli/carteira"
	"github.com/google/subcommands"
)

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a B3 CSV trade export into the ledger" }
func (*importCmd) Usage() string {
	return `carteira import [-i <csv_file>]

  Reads B3 trade records (date,code,B|S,amount,price) from the given CSV file,
  or from stdin, and appends them as events to the ledger file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "-", "CSV file to import, \"-\" for stdin")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.input != "-" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	events, err := carteira.ImportB3(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing CSV: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no record found, nothing imported.")
		return subcommands.ExitSuccess
	}

	if err := AppendEvents(events...); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d events into %s\n", len(events), *ledgerFile)
	return subcommands.ExitSuccess
}
