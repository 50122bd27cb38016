package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-go/api"
	"github.com/ledgerline/ledgerline-go/guard"
	"github.com/ledgerline/ledgerline-go/internal/config"
	"github.com/ledgerline/ledgerline-go/session"
	"github.com/ledgerline/ledgerline-go/tokenstore"
)

// app wires the SDK pieces together for one CLI invocation. Each command is
// the terminal equivalent of a page controller: it talks to the API through
// the shared client and shows failures as messages, never stack traces.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	client  *api.Client
	session *session.Store
	tokens  tokenstore.Store
}

// command describes one CLI verb. Protected commands run behind the guard
// with their declared permissions; public ones (login, register) do not need
// a session at all.
type command struct {
	name          string
	usage         string
	public        bool
	requiredPerms []string
	run           func(ctx context.Context, a *app, args []string) error
}

func (a *app) commands() map[string]command {
	cmds := map[string]command{}
	for _, c := range append(authCommands(), resourceCommands()...) {
		cmds[c.name] = c
	}
	return cmds
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmds := a.commands()

	cmd, ok := cmds[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	if !cmd.public {
		if err := a.requireAccess(ctx, cmd); err != nil {
			return err
		}
	}

	return cmd.run(ctx, a, args[1:])
}

// requireAccess resolves the session once and runs the guard for the command.
func (a *app) requireAccess(ctx context.Context, cmd command) error {
	a.session.LoadUser(ctx)
	return a.ensurePermissions(cmd.requiredPerms, "/"+cmd.name)
}

// ensurePermissions re-runs the guard against the current session state.
// Mutating verbs call this again with their write permissions.
func (a *app) ensurePermissions(perms []string, view string) error {
	decision := guard.Check(a.session.State(), perms, view)
	switch decision.Outcome {
	case guard.Granted:
		return nil
	case guard.RedirectLogin:
		return fmt.Errorf("not logged in; run 'ledgerline login' first")
	case guard.RedirectUnauthorized:
		return fmt.Errorf("you do not have permission for %s", view)
	default:
		return fmt.Errorf("session is still loading, try again")
	}
}

func (a *app) printUsage() {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "Usage: ledgerline <command> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", name, cmds[name].usage)
	}
}
