package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agenda/internal/config"
	"github.com/jask/agenda/internal/database"
	"github.com/jask/agenda/internal/database/repository"
	"github.com/jask/agenda/internal/logging"
	"github.com/jask/agenda/internal/service"
	"github.com/jask/agenda/internal/testdata"
	"github.com/jask/agenda/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Globals are flags shared by every command plus the output streams.
type Globals struct {
	Config   string           `help:"Path to a TOML config file." type:"path" placeholder:"PATH"`
	LogLevel string           `help:"Override log.level (debug, info, warn, error)." placeholder:"LEVEL"`
	Version  kong.VersionFlag `help:"Show version." short:"V"`

	Out io.Writer `kong:"-"`
	Err io.Writer `kong:"-"`
}

// CLI is the top-level command structure for agenda.
type CLI struct {
	Globals

	UI         UICmd         `cmd:"" default:"1" help:"Open the contact book TUI."`
	List       ListCmd       `cmd:"" help:"Print contacts."`
	Add        AddCmd        `cmd:"" help:"Create a contact."`
	Rm         RmCmd         `cmd:"" help:"Delete a contact by id or unique id prefix."`
	Import     ImportCmd     `cmd:"" help:"Import contacts from CSV (name,phone,email)."`
	Export     ExportCmd     `cmd:"" help:"Export contacts as CSV."`
	Reset      ResetCmd      `cmd:"" help:"Delete every contact."`
	Seed       SeedCmd       `cmd:"" help:"Insert generated sample contacts."`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"Write the effective config to a TOML file."`
}

// env is everything a command needs once config is resolved.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	store    service.ContactStore
	contacts *service.ContactController
	ingest   *service.IngestService
	maint    *service.MaintenanceService
	closers  []io.Closer
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

func loadConfig(g *Globals) (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(g.LogLevel))
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setup resolves config, logging and the store. In TUI mode the logger
// writes to the configured file instead of stderr.
func setup(g *Globals, tuiMode bool) (*env, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	if tuiMode {
		logger, f, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		e.logger = logger
		e.closers = append(e.closers, f)
	} else {
		logger, err := logging.New(g.Err, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		e.logger = logger
	}

	if err := openStore(e); err != nil {
		_ = e.Close()
		return nil, err
	}
	e.contacts = service.NewContactController(e.store, e.logger)
	e.ingest = &service.IngestService{Contacts: e.contacts}
	return e, nil
}

func openStore(e *env) error {
	switch e.cfg.Database.Driver {
	case config.DriverMemory:
		mem := repository.NewMemoryContactRepo()
		e.store = mem
		e.maint = &service.MaintenanceService{Store: mem}
		e.logger.Debug("using in-memory store")
		return nil
	default:
		path := e.cfg.Database.Path
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir db dir: %w", err)
		}
		if err := database.RunMigrations(path); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		e.closers = append(e.closers, db)
		e.store = repository.NewContactRepo(db)
		e.maint = &service.MaintenanceService{DB: db}
		e.logger.Debug("opened sqlite store", "path", path)
		return nil
	}
}

// UICmd opens the interactive contact list.
type UICmd struct{}

func (c *UICmd) Run(g *Globals) error {
	e, err := setup(g, true)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	model := tui.New(ctx, e.contacts, e.logger, tui.Options{
		Title:         e.cfg.UI.Title,
		ToastDuration: e.cfg.UI.ToastDuration,
	})
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if e.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// ListCmd prints contacts, filtered the same way as the TUI search.
type ListCmd struct {
	Query string `help:"Only show contacts containing this text." short:"q"`
}

func (c *ListCmd) Run(g *Globals) error {
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer e.Close()

	all, err := e.contacts.FindAll(context.Background())
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	shown := tui.FilterContacts(all, c.Query)
	if len(shown) == 0 {
		fmt.Fprintln(g.Out, "no contacts")
		return nil
	}
	fmt.Fprintln(g.Out, tui.RenderList(shown))
	return nil
}

// AddCmd creates one contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number."`
	Email string `arg:"" help:"Email address."`
}

func (c *AddCmd) Run(g *Globals) error {
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer e.Close()

	ctx := context.Background()
	saved, err := e.contacts.Create(ctx, service.NewContact{Name: c.Name, Phone: c.Phone, Email: c.Email})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Fprintf(g.Out, "added %s %s\n", saved.ID, saved.Name)
	similar, err := e.contacts.FindSimilar(ctx, saved.Name, saved.ID)
	switch {
	case err != nil:
		e.logger.Debug("similar contact lookup failed", "id", saved.ID, "err", err)
	case similar != nil:
		fmt.Fprintf(g.Err, "warning: similar to existing contact %s (%s)\n", similar.Name, similar.ID)
	}
	return nil
}

// RmCmd deletes one contact. Unknown ids are a no-op.
type RmCmd struct {
	ID string `arg:"" help:"Contact id, or a prefix matching exactly one contact."`
}

func (c *RmCmd) Run(g *Globals) error {
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	defer e.Close()

	ctx := context.Background()
	id, err := resolveID(ctx, e.contacts, c.ID)
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	if err := e.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	fmt.Fprintf(g.Out, "removed %s\n", id)
	return nil
}

// resolveID expands a short id as shown in the list. A full id, or a prefix
// with no match, is returned unchanged.
func resolveID(ctx context.Context, contacts *service.ContactController, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", service.ErrBlankID
	}
	all, err := contacts.FindAll(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, ct := range all {
		if ct.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(ct.ID, arg) {
			matches = append(matches, ct.ID)
		}
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return arg, nil
}

// ImportCmd loads contacts from a CSV file.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"CSV file with name,phone,email rows."`
}

func (c *ImportCmd) Run(g *Globals) error {
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer e.Close()

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	res, err := e.ingest.ImportCSV(context.Background(), f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for _, rowErr := range res.Errors {
		fmt.Fprintf(g.Err, "skipped: %v\n", rowErr)
	}
	fmt.Fprintf(g.Out, "imported %d, skipped %d duplicates, %d errors\n", res.Imported, res.Skipped, len(res.Errors))
	return nil
}

// ExportCmd writes contacts as CSV to a file or stdout.
type ExportCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Destination file. Defaults to stdout."`
}

func (c *ExportCmd) Run(g *Globals) error {
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer e.Close()

	w := g.Out
	if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		w = f
	}
	n, err := e.ingest.ExportCSV(context.Background(), w)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if c.File != "" {
		fmt.Fprintf(g.Out, "exported %d contacts to %s\n", n, c.File)
	}
	return nil
}

// ResetCmd wipes the contact book.
type ResetCmd struct {
	Yes bool `help:"Confirm deleting every contact."`
}

func (c *ResetCmd) Run(g *Globals) error {
	if !c.Yes {
		return errors.New("reset: refusing to delete every contact without --yes")
	}
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	defer e.Close()

	if err := e.maint.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Info("contacts reset")
	fmt.Fprintln(g.Out, "all contacts deleted")
	return nil
}

// SeedCmd fills the store with generated contacts.
type SeedCmd struct {
	Count int   `help:"Number of contacts to generate." default:"20"`
	Seed  int64 `help:"Generator seed." default:"1"`
}

func (c *SeedCmd) Run(g *Globals) error {
	if c.Count <= 0 {
		return errors.New("seed: --count must be positive")
	}
	e, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer e.Close()

	if err := testdata.Seed(context.Background(), e.store, c.Count, c.Seed); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintf(g.Out, "seeded %d contacts\n", c.Count)
	return nil
}

// InitConfigCmd writes the effective config so it can be edited.
type InitConfigCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Destination. Defaults to ~/.config/agenda/config.toml."`
}

func (c *InitConfigCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("init-config: %w", err)
	}
	if err := config.Save(cfg, c.Path); err != nil {
		return fmt.Errorf("init-config: %w", err)
	}
	fmt.Fprintln(g.Out, "config written")
	return nil
}

func newParser(cli *CLI, out, errOut io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("agenda"),
		kong.Description("A terminal contact book."),
		kong.Vars{"version": version + " " + commit},
		kong.Writers(out, errOut),
		kong.UsageOnError(),
	)
}

func run(args []string, out, errOut io.Writer) error {
	var cli CLI
	parser, err := newParser(&cli, out, errOut)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cli.Out, cli.Err = out, errOut
	return kctx.Run(&cli.Globals)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
