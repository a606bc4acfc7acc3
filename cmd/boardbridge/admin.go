package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/Strob0t/BoardBridge/internal/adapter/mattermost"
	"github.com/Strob0t/BoardBridge/internal/config"
	"github.com/Strob0t/BoardBridge/internal/domain"
	"github.com/Strob0t/BoardBridge/internal/service"
)

// runAdmin dispatches admin subcommands (set-config, show-config, gen-secret).
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "set-config":
		return runAdminSetConfig(args[1:])
	case "show-config":
		return runAdminShowConfig(args[1:])
	case "gen-secret":
		return runAdminGenSecret(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: boardbridge admin <command> [options]

Commands:
  set-config    Store a user's Trello credentials in the KV store
  show-config   Show a user's stored Trello configuration
  gen-secret    Generate a webhook secret
  help          Show this help message

Examples:
  boardbridge admin set-config --user abc123 --workspace acme
  boardbridge admin show-config --user abc123
  boardbridge admin gen-secret
`)
}

func loadAdminDeps() (*service.AccountService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	kv := mattermost.NewKVStore(context.Background(), cfg.Mattermost.SiteURL, cfg.Mattermost.BotToken)
	return service.NewAccountService(kv), nil
}

func runAdminSetConfig(args []string) error {
	fs := flag.NewFlagSet("set-config", flag.ContinueOnError)
	user := fs.String("user", "", "platform user id (required)")
	workspace := fs.String("workspace", "", "Trello workspace name (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *user == "" {
		return fmt.Errorf("--user is required")
	}
	if *workspace == "" {
		return fmt.Errorf("--workspace is required")
	}

	apiKey, err := promptSecret("Trello API key: ")
	if err != nil {
		return fmt.Errorf("read api key: %w", err)
	}
	token, err := promptSecret("Trello OAuth token: ")
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	svc, err := loadAdminDeps()
	if err != nil {
		return err
	}

	ctx := context.Background()
	err = svc.StoreConfig(ctx, *user, service.StoredConfig{
		APIKey:    apiKey,
		Token:     token,
		Workspace: *workspace,
	})
	if err != nil {
		return fmt.Errorf("store config: %w", err)
	}
	if token != "" {
		if err := svc.Connect(ctx, *user, token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Configuration stored for user %s\n", *user)
	return nil
}

func runAdminShowConfig(args []string) error {
	fs := flag.NewFlagSet("show-config", flag.ContinueOnError)
	user := fs.String("user", "", "platform user id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *user == "" {
		return fmt.Errorf("--user is required")
	}

	svc, err := loadAdminDeps()
	if err != nil {
		return err
	}

	cfg, err := svc.LoadConfig(context.Background(), *user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no configuration stored for user %s", *user)
		}
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("API key:   %s\n", mask(cfg.APIKey))
	fmt.Printf("Token:     %s\n", mask(cfg.Token))
	fmt.Printf("Workspace: %s\n", cfg.Workspace)
	return nil
}

func runAdminGenSecret(args []string) error {
	fs := flag.NewFlagSet("gen-secret", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println(uuid.NewString())
	return nil
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// promptSecret reads a value from the terminal without echoing.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
