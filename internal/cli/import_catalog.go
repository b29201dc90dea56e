package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database"
	auditRepo "github.com/mrlokans/plotpoint/internal/database/audit"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/tags"
)

// ImportCatalogCommand loads books and tags from a catalog file.
type ImportCatalogCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool
	Verbose      bool

	cfg *config.Config
	out io.Writer
}

func NewImportCatalogCommand(cfg *config.Config) *ImportCatalogCommand {
	return &ImportCatalogCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *ImportCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-catalog", flag.ContinueOnError)

	fs.StringVarP(&cmd.FilePath, "file", "f", "", "Path to the catalog file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the file without making changes")
	fs.BoolVarP(&cmd.Verbose, "verbose", "v", false, "List every error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-catalog --file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books and tags from a JSON file. Comments and trailing commas\n")
		fmt.Fprintf(os.Stderr, "are allowed. Books already catalogued with the same title and author\n")
		fmt.Fprintf(os.Stderr, "are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-catalog --file books.jsonc\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-catalog --file books.jsonc --dry-run -v\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("required flag --file not provided")
	}

	return nil
}

func (cmd *ImportCatalogCommand) Run() error {
	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	file, err := catalog.ParseCatalogFile(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "File: %s\n", filepath.Base(cmd.FilePath))
	fmt.Fprintf(cmd.out, "Found %d books\n", len(file.Books))
	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
	}

	db, err := database.NewDatabase(cmd.DatabasePath, cmd.cfg.Database.LogSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	svc := catalog.NewService(books.NewRepository(db.DB), tags.NewRepository(db.DB), reviews.NewRepository(db.DB))
	result := svc.Import(file, cmd.DryRun)

	verb := "imported"
	if cmd.DryRun {
		verb = "valid"
	}
	fmt.Fprintln(cmd.out, "\n=== Import Summary ===")
	fmt.Fprintf(cmd.out, "Tags created: %d\n", result.TagsCreated)
	fmt.Fprintf(cmd.out, "Books %s: %d/%d\n", verb, result.BooksImported, len(file.Books))
	fmt.Fprintf(cmd.out, "Books skipped: %d\n", result.BooksSkipped)

	var failure error
	if len(result.Errors) > 0 {
		fmt.Fprintf(cmd.out, "\n%d errors occurred\n", len(result.Errors))
		if cmd.Verbose {
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.out, "  [ERROR] %s\n", msg)
			}
		}
		failure = fmt.Errorf("%d catalog entries failed", len(result.Errors))
	}

	if !cmd.DryRun {
		audit.NewService(auditRepo.NewRepository(db.DB)).LogImport(audit.Actor{}, filepath.Base(cmd.FilePath),
			result.BooksImported, result.BooksSkipped, len(result.Errors), failure)
	}
	return failure
}
