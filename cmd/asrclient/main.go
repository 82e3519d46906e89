package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FloatbotAI/unimrcp/internal/asr"
	"github.com/FloatbotAI/unimrcp/internal/config"
	"github.com/FloatbotAI/unimrcp/internal/llm"
	"github.com/FloatbotAI/unimrcp/internal/mrcp"
	"github.com/FloatbotAI/unimrcp/internal/tui"
)

const version = "0.1.0"

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "asrclient",
	Short: "Demo speech recognition client",
}

func init() {
	rootCmd.AddCommand(
		runCmd(),
		shellCmd(),
		configureCmd(),
		versionCmd(),
	)
}

func runCmd() *cobra.Command {
	var grammarFile string
	var audioFile string
	var profile string
	var resultFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one recognition dialogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if profile != "" {
				cfg.Client.Profile = profile
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runSession(ctx, cfg, grammarFile, audioFile, resultFile)
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "grammar.xml", "grammar file to define")
	cmd.Flags().StringVar(&audioFile, "audio", "input.pcm", "audio file to stream")
	cmd.Flags().StringVar(&profile, "profile", "", "client stack profile (overrides config)")
	cmd.Flags().StringVar(&resultFile, "result", "", "NLSML document the loopback recognizer returns")

	return cmd
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			result, err := tui.Run(cfg)
			if err != nil {
				return fmt.Errorf("configuration wizard error: %w", err)
			}
			if result.Cancelled {
				fmt.Println("Configuration cancelled.")
				return nil
			}

			if err := result.Config.Validate(); err != nil {
				fmt.Printf("Configuration validation failed: %v\n", err)
				return err
			}

			if err := config.Save(result.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			configPath, _ := config.GetConfigPath()
			fmt.Printf("Configuration saved to %s\n", configPath)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("asrclient %s\n", version)
			return nil
		},
	}
}

// runSession drives one dialogue over the in-process recognizer stack and
// prints the interpreted results.
func runSession(ctx context.Context, cfg *config.Config, grammarFile, audioFile, resultFile string) error {
	loopCfg := cfg.ToLoopbackConfig()
	loopCfg.ResultBody = demoResult
	if resultFile != "" {
		body, err := readResultFile(resultFile)
		if err != nil {
			return err
		}
		loopCfg.ResultBody = body
	}

	engine, err := asr.NewEngine(mrcp.NewLoopback(loopCfg), cfg.ToEngineConfig())
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	sess, err := engine.Launch(ctx, grammarFile, audioFile)
	if err != nil {
		_ = engine.Close()
		return fmt.Errorf("failed to launch session: %w", err)
	}

	<-sess.Done()
	if err := engine.Close(); err != nil {
		log.Printf("Engine close: %v", err)
	}
	if err := sess.Err(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	results := sess.Results()
	if len(results) == 0 {
		fmt.Println("No recognition results.")
		return nil
	}
	for _, in := range results {
		printInterpretation(in.Instance, postProcess(ctx, cfg, in.Input), in.Confidence)
	}
	return nil
}

// postProcess optionally cleans the input transcription up with the
// configured LLM. Failures are logged and leave the text unchanged.
func postProcess(ctx context.Context, cfg *config.Config, text string) string {
	if !cfg.LLM.Enabled || text == "" {
		return text
	}
	adapter, err := llm.NewAdapter(cfg.ToLLMConfig())
	if err != nil {
		log.Printf("LLM post-processing unavailable: %v", err)
		return text
	}
	cleaned, err := adapter.Process(ctx, text)
	if err != nil {
		log.Printf("LLM post-processing failed: %v", err)
		return text
	}
	return cleaned
}

func printInterpretation(instance, input string, confidence float32) {
	if instance != "" {
		fmt.Printf("Instance: %s\n", instance)
	}
	if input != "" {
		fmt.Printf("Input:    %s\n", input)
	}
	if confidence > 0 {
		fmt.Printf("Confidence: %.2f\n", confidence)
	}
}

func readResultFile(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read result document: %w", err)
	}
	return string(body), nil
}

// demoResult is returned by the loopback recognizer when no result document
// is supplied.
const demoResult = `<?xml version="1.0"?>
<result>
  <interpretation confidence="0.92">
    <instance>open_door</instance>
    <input mode="speech">open the door</input>
  </interpretation>
</result>
`
