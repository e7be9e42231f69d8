package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjipeng/promptrun/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage promptrun configuration",
	Long:  `View and modify promptrun configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration (keys masked)",
	RunE:  runConfigShow,
}

var (
	useKeychain bool
	noKeychain  bool
)

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set configuration value",
	Long: `Set a configuration value with optional keychain storage for API keys.

Examples:
  # Set the default model
  promptrun config set model google-gla:gemini-1.5-flash

  # Store API key in OS keychain (secure, recommended)
  promptrun config set api.google_key AIza... --use-keychain

  # Store API key in config file (plaintext, for CI/CD)
  promptrun config set api.openai_key sk-... --no-keychain`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	configSetCmd.Flags().BoolVar(&useKeychain, "use-keychain", false, "Store API key in OS keychain (secure)")
	configSetCmd.Flags().BoolVar(&noKeychain, "no-keychain", false, "Store API key in config file (plaintext)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Printf("model         = %s\n", cfg.Model)
	fmt.Printf("system_prompt = %q\n", cfg.SystemPrompt)
	fmt.Printf("api.google_key = %s\n", config.MaskAPIKey(cfg.API.GoogleKey))
	fmt.Printf("api.openai_key = %s\n", config.MaskAPIKey(cfg.API.OpenAIKey))
	fmt.Printf("api.use_keychain = %v\n", cfg.API.UseKeychain)

	cm := config.NewCredentialManager()
	fmt.Printf("mode          = %s (%s)\n", cm.GetMode(), cm.GetMode().ConfigSource())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	switch key {
	case "model":
		cfg.Model = value
	case "system_prompt":
		cfg.SystemPrompt = value
	case "api.google_key":
		return setAPIKey(value, func(km *config.KeyringManager) error { return km.SetGoogleKey(value) },
			func() { cfg.API.GoogleKey = value })
	case "api.openai_key":
		return setAPIKey(value, func(km *config.KeyringManager) error { return km.SetOpenAIKey(value) },
			func() { cfg.API.OpenAIKey = value })
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}

	if err := cfg.Save(config.DefaultPath()); err != nil {
		return err
	}
	fmt.Printf("✅ %s = %s\n", key, value)
	return nil
}

// setAPIKey stores an API key in the keychain or the config file,
// prompting when neither flag decides
func setAPIKey(value string, storeKeychain func(*config.KeyringManager) error, storeConfig func()) error {
	km := config.NewKeyringManager()

	storeInKeychain := useKeychain
	if !useKeychain && !noKeychain && km.IsAvailable() {
		fmt.Print("Store in OS keychain (secure)? (Y/n): ")
		var response string
		fmt.Scanln(&response)
		storeInKeychain = response == "" || strings.ToLower(response) == "y"
	}

	if storeInKeychain {
		if err := storeKeychain(km); err != nil {
			return err
		}
		cfg.API.UseKeychain = true
		fmt.Println("✅ API key saved to OS keychain")
	} else {
		storeConfig()
		cfg.API.UseKeychain = false
		fmt.Println("✅ API key saved to config file (plaintext)")
	}

	return cfg.Save(config.DefaultPath())
}
