package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/services"
)

// ImportCommand appends the quotes of a JSON file to the store.
type ImportCommand struct {
	DatabasePath string
	FilePath     string
	Strict       bool

	out io.Writer
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{out: os.Stdout}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.FilePath, "file", "", "Path to a JSON array of quotes (required)")
	fs.BoolVar(&cmd.Strict, "strict", false, "Reject files with blank fields or duplicate ids")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import quotes from a JSON file. Records are appended as-is.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read quotes file: %w", err)
	}

	db, svc, err := openQuotes(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	activity := audit.NewService(db.Activity())
	defer activity.Wait()

	n, err := svc.Import(data, cmd.Strict)
	activity.LogImport(services.TriggerCLI, n, len(svc.Quotes()), cmd.Strict, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "Quotes imported successfully! (%d imported, %d total)\n", n, len(svc.Quotes()))
	return nil
}
