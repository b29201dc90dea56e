package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/database/users"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/exporters"
)

// ExportShelfCommand writes one user's shelf as a markdown note.
type ExportShelfCommand struct {
	Username     string
	Shelf        string
	OutputDir    string
	DatabasePath string

	cfg *config.Config
	out io.Writer
}

func NewExportShelfCommand(cfg *config.Config) *ExportShelfCommand {
	return &ExportShelfCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *ExportShelfCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-shelf", flag.ContinueOnError)

	fs.StringVarP(&cmd.Username, "username", "u", "", "Owner of the shelf (required)")
	fs.StringVarP(&cmd.Shelf, "shelf", "s", entities.ReadShelfName, "Shelf to export")
	fs.StringVarP(&cmd.OutputDir, "output", "o", cmd.cfg.Export.Dir, "Directory for the markdown file")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-shelf --username <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export a shelf with its books, ratings and dates to markdown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-shelf -u alice --shelf \"Want to Read\" -o ~/Obsidian/Reading\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		fs.Usage()
		return fmt.Errorf("required flag --username not provided")
	}

	return nil
}

func (cmd *ExportShelfCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, cmd.cfg.Database.LogSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	user, err := users.NewRepository(db.DB).GetUserByUsername(cmd.Username)
	if errors.Is(err, users.ErrUserNotFound) {
		return fmt.Errorf("no user named %q", cmd.Username)
	}
	if err != nil {
		return err
	}

	shelfRepo := shelves.NewRepository(db.DB)
	names, err := shelfRepo.GetUserShelves(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load shelves: %w", err)
	}
	if !slices.Contains(names, cmd.Shelf) {
		return fmt.Errorf("%w: %q (have %s)", shelves.ErrShelfNotFound, cmd.Shelf, strings.Join(names, ", "))
	}

	svc := catalog.NewService(books.NewRepository(db.DB), tags.NewRepository(db.DB), reviews.NewRepository(db.DB))
	exporter := exporters.NewMarkdownExporter(cmd.OutputDir, shelfRepo, svc)

	result, err := exporter.Export(user.ID, user.Username, cmd.Shelf)
	if err != nil {
		return fmt.Errorf("failed to export shelf: %w", err)
	}

	fmt.Fprintf(cmd.out, "Exported %d books to %s\n", result.BooksProcessed, result.Path)
	if result.BooksFailed > 0 {
		fmt.Fprintf(cmd.out, "%d books could not be exported\n", result.BooksFailed)
	}
	return nil
}
