package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ledgerline/ledgerline-go/api"
	"github.com/ledgerline/ledgerline-go/tokenstore"
)

func authCommands() []command {
	return []command{
		{
			name:   "login",
			usage:  "sign in with email and password",
			public: true,
			run:    runLogin,
		},
		{
			name:   "register",
			usage:  "create a new account",
			public: true,
			run:    runRegister,
		},
		{
			name:   "logout",
			usage:  "sign out and clear stored tokens",
			public: true,
			run:    runLogout,
		},
		{
			name:  "whoami",
			usage: "show the current user and token status",
			run:   runWhoami,
		},
		{
			name:  "passwd",
			usage: "change the current user's password",
			run:   runPasswd,
		},
	}
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	result := a.session.Login(ctx, api.Credentials{Email: *email, Password: *password})
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Printf("Logged in as %s\n", result.User.FullName())
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	businessName := fs.String("business", "", "business name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	result := a.session.Register(ctx, api.Registration{
		Email:        *email,
		Password:     *password,
		FirstName:    *firstName,
		LastName:     *lastName,
		Phone:        *phone,
		BusinessName: *businessName,
	})
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Printf("Account created for %s\n", result.User.Email)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	a.session.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	output := a.outputFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := a.session.State()

	view := map[string]any{
		"user": state.User,
	}
	if raw, ok := a.tokens.AccessToken(); ok {
		if claims, err := tokenstore.PeekClaims(raw); err == nil && !claims.ExpiresAt.IsZero() {
			view["tokenExpiresAt"] = claims.ExpiresAt
		}
	}
	return a.render(*output, view)
}

func runPasswd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return fmt.Errorf("both -current and -new are required")
	}

	if err := a.client.Auth.ChangePassword(ctx, *current, *next); err != nil {
		return fmt.Errorf("%s", api.Message(err, "Password change failed"))
	}

	fmt.Println("Password changed")
	return nil
}
