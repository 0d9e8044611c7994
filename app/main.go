package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/boostaproject/bap-api/app/cfg"
)

// runner is implemented by every subcommand. The configuration is loaded
// once the global options are parsed, then handed to the command.
type runner interface {
	flags.Commander
	Run(ctx context.Context, c *cfg.Cfg) error
}

// command satisfies flags.Commander. Execution goes through the parser's
// CommandHandler so Execute itself is never reached.
type command struct{}

func (command) Execute([]string) error {
	return errors.New("command must be run through the parser")
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := cfg.LoadDotEnv(); err != nil {
		slog.Error("Failed to load environment file", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Println(flagsErr.Message)
				return
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var opts cfg.Options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	commands := []struct {
		name, short, long string
		data              runner
	}{
		{"serve", "Start the HTTP API", "Apply migrations, optionally import seed data, then serve the REST API", &serveCommand{}},
		{"migrate", "Apply database migrations", "Apply every pending schema migration and print the resulting version", &migrateCommand{}},
		{"import-articles", "Import articles", "Create or update articles from a JSON, YAML, feed or HTML source", &importArticlesCommand{}},
		{"import-projects", "Import projects", "Create or merge projects from every supported file in a directory", &importProjectsCommand{}},
		{"init-data", "Seed initial data", "Create the administrator and import articles and projects into empty tables", &initDataCommand{}},
		{"create-admin", "Create an administrator", "Create an administrator account unless the email is already registered", &createAdminCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return fmt.Errorf("failed to register %s command: %w", c.name, err)
		}
	}

	parser.CommandHandler = func(active flags.Commander, _ []string) error {
		cmd, ok := active.(runner)
		if !ok {
			return fmt.Errorf("unsupported command")
		}

		appCfg, err := cfg.Load(&opts)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if appCfg.Debug {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		return cmd.Run(ctx, appCfg)
	}

	_, err := parser.ParseArgs(args)
	return err
}
