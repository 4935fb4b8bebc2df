package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// SyncCommand runs a single sync against the quote server.
type SyncCommand struct {
	DatabasePath string
	SourceURL    string
	UseResponse  bool
	Timeout      int

	out io.Writer
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{out: os.Stdout}
}

func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.SourceURL, "url", config.DefaultSyncSourceURL, "Quote server URL")
	fs.BoolVar(&cmd.UseResponse, "use-response", false, "Apply the fetched records instead of the stand-in set")
	fs.IntVar(&cmd.Timeout, "timeout", int(remote.DefaultTimeout.Seconds()), "Request timeout in seconds")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the server quote set once and merge it into the local store.\n")
		fmt.Fprintf(os.Stderr, "Server records overwrite local records with the same id.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SyncCommand) Run() error {
	db, svc, err := openQuotes(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	client := remote.NewClient(remote.Options{
		SourceURL:   cmd.SourceURL,
		Timeout:     time.Duration(cmd.Timeout) * time.Second,
		UseResponse: cmd.UseResponse,
	})
	syncer := services.NewSyncService(svc, client, consoleNotifier{out: cmd.out}, settingsstore.New(db))
	activity := audit.NewService(db.Activity())
	defer activity.Wait()
	syncer.SetActivity(activity)

	result, err := syncer.Sync(services.WithTrigger(context.Background(), services.TriggerCLI))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "Fetched %d, conflicts %d, added %d, total %d\n",
		result.Fetched, result.Conflicts, result.Added, result.Total)
	return nil
}
