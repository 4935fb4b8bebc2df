package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// AddCommand appends a quote to the store.
type AddCommand struct {
	DatabasePath string
	Text         string
	Category     string

	out io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{out: os.Stdout}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Text, "text", "", "Quote text (required)")
	fs.StringVar(&cmd.Category, "category", "", "Quote category (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -text <text> -category <category> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a quote to the local store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *AddCommand) Run() error {
	db, svc, err := openQuotes(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	q, err := svc.AddQuote(cmd.Text, cmd.Category)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "Quote added successfully! (id %d)\n", q.ID)
	return nil
}
