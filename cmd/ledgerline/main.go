package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-go/api"
	"github.com/ledgerline/ledgerline-go/internal/config"
	"github.com/ledgerline/ledgerline-go/session"
	"github.com/ledgerline/ledgerline-go/tokenstore"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}

	logger, err := newLogger(cfg.GetLogLevel())
	if err != nil {
		return err
	}

	tokens, err := newTokenStore(cfg)
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}

	client, err := api.New(cfg, tokens,
		api.WithLogger(logger),
		api.WithAuthExpiredFunc(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'ledgerline login' to sign in again.")
		}),
	)
	if err != nil {
		return fmt.Errorf("api.New: %w", err)
	}

	sess, err := session.New(client.Auth, tokens, session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("session.New: %w", err)
	}

	application := &app{
		cfg:     cfg,
		log:     logger,
		client:  client,
		session: sess,
		tokens:  tokens,
	}

	if len(args) == 0 {
		displayAppname(cfg.GetAppName())
		application.printUsage()
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return application.dispatch(ctx, args)
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger(), nil
}

func newTokenStore(cfg config.CLIConfig) (tokenstore.Store, error) {
	path := cfg.GetTokenFilePath()
	if path == "" {
		var err error
		path, err = tokenstore.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return tokenstore.NewFileStore(path)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
