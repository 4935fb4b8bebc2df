package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/services"
)

// RandomCommand prints a random quote.
type RandomCommand struct {
	DatabasePath string
	Category     string

	out io.Writer
}

func NewRandomCommand() *RandomCommand {
	return &RandomCommand{out: os.Stdout}
}

func (cmd *RandomCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Category, "category", "", "Category to pick from (defaults to the stored filter, \"all\" for every quote)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s random [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a random quote.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *RandomCommand) Run() error {
	db, svc, err := openQuotes(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	q, err := svc.RandomQuote(cmd.Category)
	if errors.Is(err, services.ErrNoQuotes) {
		fmt.Fprintln(cmd.out, err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.out, formatQuote(q.Text, q.Category))
	return nil
}
