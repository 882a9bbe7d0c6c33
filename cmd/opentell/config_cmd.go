package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit opentell's configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one resolved config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write one value into the home config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show every config field with the layer it was resolved from",
	RunE:  runConfigResolve,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configResolveCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg := config.Load(nil)
	value, err := configField(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	dir := config.HomeDir()
	if dir == "" {
		return fmt.Errorf("resolve home directory")
	}
	path := filepath.Join(dir, config.ConfigFileName)

	cfg := config.Default()
	if existing, loadErr := configLoadFile(path); loadErr == nil {
		cfg = existing
	}
	if err := setConfigField(cfg, key, value); err != nil {
		return err
	}

	if getDryRun() {
		fmt.Printf("[dry-run] Would set %s=%s in %s\n", key, value, path)
		return nil
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("Set %s=%s in %s\n", key, value, path)
	return nil
}

func runConfigResolve(cmd *cobra.Command, args []string) error {
	resolved := config.Resolve(nil)
	return writeStructured(resolved, func() error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush() //nolint:errcheck // best-effort flush
		fmt.Fprintln(w, "FIELD\tVALUE\tSOURCE")
		apiKey, _ := resolved.AnthropicAPIKey.Value.(string)
		fmt.Fprintf(w, "anthropic_api_key\t%v\t%v\n", redactAPIKey(apiKey), resolved.AnthropicAPIKey.Source)
		fmt.Fprintf(w, "classifier_model\t%v\t%v\n", resolved.ClassifierModel.Value, resolved.ClassifierModel.Source)
		fmt.Fprintf(w, "synthesis_model\t%v\t%v\n", resolved.SynthesisModel.Value, resolved.SynthesisModel.Source)
		fmt.Fprintf(w, "confidence_threshold\t%v\t%v\n", resolved.ConfidenceThreshold.Value, resolved.ConfidenceThreshold.Source)
		fmt.Fprintf(w, "max_learnings\t%v\t%v\n", resolved.MaxLearnings.Value, resolved.MaxLearnings.Source)
		fmt.Fprintf(w, "paused\t%v\t%v\n", resolved.Paused.Value, resolved.Paused.Source)
		return nil
	})
}

func configField(cfg *config.Config, key string) (string, error) {
	switch key {
	case "anthropic_api_key":
		return redactAPIKey(cfg.AnthropicAPIKey), nil
	case "classifier_model":
		return cfg.ClassifierModel, nil
	case "synthesis_model":
		return cfg.SynthesisModel, nil
	case "confidence_threshold":
		return strconv.FormatFloat(cfg.ConfidenceThreshold, 'f', -1, 64), nil
	case "max_learnings":
		return strconv.Itoa(cfg.MaxLearnings), nil
	case "paused":
		return strconv.FormatBool(cfg.Paused), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func setConfigField(cfg *config.Config, key, value string) error {
	switch key {
	case "anthropic_api_key":
		cfg.AnthropicAPIKey = value
	case "classifier_model":
		cfg.ClassifierModel = value
	case "synthesis_model":
		cfg.SynthesisModel = value
	case "confidence_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("confidence_threshold must be a number: %w", err)
		}
		cfg.ConfidenceThreshold = f
	case "max_learnings":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_learnings must be an integer: %w", err)
		}
		cfg.MaxLearnings = n
	case "paused":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("paused must be true or false: %w", err)
		}
		cfg.Paused = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func configLoadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func redactAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
