package entrypoint

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database"
	auditRepo "github.com/mrlokans/plotpoint/internal/database/audit"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/database/users"
	"github.com/mrlokans/plotpoint/internal/exporters"
	"github.com/mrlokans/plotpoint/internal/menus"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// Run opens the catalog and drives the interactive menus on the process
// terminal until the user exits or input ends.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting PlotPoint v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if admins, err := users.NewRepository(db.DB).CountAdmins(); err == nil && admins == 0 {
		log.Printf("No administrator account exists. Create one with: %s create-admin --username <name>", os.Args[0])
	}

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	if retention := cfg.Audit.Retention(); retention > 0 {
		if deleted, err := auditService.DeleteOldEvents(retention); err != nil {
			log.Printf("Failed to prune activity log: %v", err)
		} else if deleted > 0 {
			log.Printf("Pruned %d activity log entries older than %d days", deleted, cfg.Audit.RetentionDays)
		}
	}

	reader := terminal.NewLineReader(cfg.Terminal)
	defer reader.Close()

	// SIGTERM, and SIGINT outside the line editor, would otherwise skip the
	// deferred cleanup and leave the terminal in raw mode.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	go func() {
		sig := <-quit
		log.Printf("Received %s, shutting down", sig)
		reader.Close()
		db.Close()
		os.Exit(130)
	}()

	bookRepo := books.NewRepository(db.DB)
	tagRepo := tags.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	shelfRepo := shelves.NewRepository(db.DB)

	catalogService := catalog.NewService(bookRepo, tagRepo, reviewRepo)

	app := menus.New(menus.Deps{
		Console:  terminal.NewConsole(reader, os.Stdout),
		Auth:     auth.NewService(db.DB, cfg.Auth, cfg.Shelves.Defaults),
		Catalog:  catalogService,
		Shelves:  shelfRepo,
		Reviews:  reviewRepo,
		Exporter: exporters.NewMarkdownExporter(cfg.Export.Dir, shelfRepo, catalogService),
		Audit:    auditService,
	})

	return app.Run(context.Background())
}
