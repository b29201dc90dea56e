package cli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database"
	auditRepo "github.com/mrlokans/plotpoint/internal/database/audit"
)

// CreateAdminCommand registers an administrator account. The interactive
// sign-up only ever creates standard users.
type CreateAdminCommand struct {
	Username     string
	Password     string
	DatabasePath string

	cfg *config.Config
	out io.Writer
}

func NewCreateAdminCommand(cfg *config.Config) *CreateAdminCommand {
	return &CreateAdminCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)

	fs.StringVarP(&cmd.Username, "username", "u", "", "Administrator username (required)")
	fs.StringVarP(&cmd.Password, "password", "p", os.Getenv("PLOTPOINT_ADMIN_PASSWORD"), "Administrator password (default $PLOTPOINT_ADMIN_PASSWORD)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin --username <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account with the default shelves.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  PLOTPOINT_ADMIN_PASSWORD=s3cret %s create-admin --username admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		fs.Usage()
		return fmt.Errorf("required flag --username not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("password required: pass --password or set PLOTPOINT_ADMIN_PASSWORD")
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, cmd.cfg.Database.LogSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	authService := auth.NewService(db.DB, cmd.cfg.Auth, cmd.cfg.Shelves.Defaults)
	user, err := authService.Register(cmd.Username, cmd.Password, true)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	audit.NewService(auditRepo.NewRepository(db.DB)).LogAuth(audit.Actor{UserID: user.ID, Username: user.Username}, "admin_create", nil)
	fmt.Fprintf(cmd.out, "Created administrator %q (id %d)\n", user.Username, user.ID)
	return nil
}
