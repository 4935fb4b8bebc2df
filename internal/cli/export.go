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

// ExportCommand writes the store as a pretty-printed JSON array.
type ExportCommand struct {
	DatabasePath string
	OutputPath   string

	out io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.OutputPath, "output", "", "Output file (defaults to stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every quote as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	db, svc, err := openQuotes(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := svc.Export()
	if err != nil {
		return err
	}

	activity := audit.NewService(db.Activity())
	defer activity.Wait()
	activity.LogExport(services.TriggerCLI, len(svc.Quotes()), nil)

	if cmd.OutputPath == "" {
		_, err := fmt.Fprintln(cmd.out, string(data))
		return err
	}

	if err := os.WriteFile(cmd.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.out, "Exported %d quotes to %s\n", len(svc.Quotes()), cmd.OutputPath)
	return nil
}
