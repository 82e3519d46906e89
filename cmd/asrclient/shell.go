package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FloatbotAI/unimrcp/internal/config"
)

// shellCmd is the interactive console: recognition dialogues can be run
// repeatedly while the configuration is watched for edits.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive console for running recognition dialogues",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			manager.OnReload = func(cfg *config.Config) {
				fmt.Printf("\nconfig reloaded (profile=%s version=%d)\n> ", cfg.Client.Profile, cfg.Client.Version)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := manager.StartWatching(ctx); err != nil {
				return fmt.Errorf("failed to watch config: %w", err)
			}
			defer manager.Stop()

			return runShell(ctx, manager)
		},
	}
}

func runShell(ctx context.Context, manager *config.Manager) error {
	fmt.Println("asrclient shell; type 'help' for commands")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "run":
			if len(fields) != 3 {
				fmt.Println("usage: run <grammar-file> <audio-file>")
				continue
			}
			cfg := manager.GetConfig()
			if err := runSession(ctx, cfg, fields[1], fields[2], ""); err != nil {
				fmt.Printf("run failed: %v\n", err)
			}
		case "status":
			cfg := manager.GetConfig()
			fmt.Printf("profile=%s version=%d result_timeout=%v llm=%v\n",
				cfg.Client.Profile, cfg.Client.Version, cfg.Recognition.ResultTimeout, cfg.LLM.Enabled)
		case "help":
			fmt.Println("commands:")
			fmt.Println("  run <grammar-file> <audio-file>   run one recognition dialogue")
			fmt.Println("  status                            show the active configuration")
			fmt.Println("  quit                              exit")
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}
