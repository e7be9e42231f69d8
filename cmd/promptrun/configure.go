package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjipeng/promptrun/internal/config"
	"github.com/benjipeng/promptrun/internal/llm"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive setup wizard (with OS keychain support)",
	Long: `Walk through promptrun configuration step-by-step with secure
credential storage.

This will configure:
1. Provider API key (stored in OS keychain by default)
2. Default model (provider-qualified, e.g. google-gla:gemini-1.5-flash)
3. Default system prompt`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 promptrun Configuration Wizard")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	configPath := config.DefaultPath()
	loadedCfg, err := config.Load(configPath)
	if err != nil {
		loadedCfg = config.Default()
	}

	km := config.NewKeyringManager()
	keychainAvailable := km.IsAvailable()
	if !keychainAvailable {
		fmt.Println("⚠️  OS keychain not available (headless system or Linux without libsecret)")
		fmt.Println("   Will store API key in config file instead.")
		fmt.Println()
	}

	// Step 1: Default model
	fmt.Println("Step 1/3: Default Model")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  google-gla:gemini-1.5-flash (default, fast)")
	fmt.Println("  google-gla:gemini-1.5-pro")
	fmt.Println("  openai:gpt-4o-mini")
	fmt.Printf("Current: %s\n", loadedCfg.Model)
	fmt.Print("Enter model or press Enter to keep current: ")

	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response != "" {
		if _, err := llm.ParseModelID(response); err != nil {
			fmt.Printf("⚠️  %v\n", err)
		} else {
			loadedCfg.Model = response
		}
	}
	fmt.Printf("✅ Using %s\n", loadedCfg.Model)
	fmt.Println()

	id, err := llm.ParseModelID(loadedCfg.Model)
	if err != nil {
		return err
	}

	// Step 2: API key for the chosen provider
	fmt.Printf("Step 2/3: API Key (%s)\n", id.Provider)
	fmt.Println()
	switch id.Provider {
	case llm.ProviderGoogle:
		fmt.Println("Get your key at: https://aistudio.google.com/apikey")
	case llm.ProviderOpenAI:
		fmt.Println("Get your key at: https://platform.openai.com/api-keys")
	}
	fmt.Print("Enter API key (or press Enter to skip): ")

	response, _ = reader.ReadString('\n')
	apiKey := strings.TrimSpace(response)

	if apiKey != "" {
		stored := false
		if keychainAvailable {
			switch id.Provider {
			case llm.ProviderGoogle:
				err = km.SetGoogleKey(apiKey)
			case llm.ProviderOpenAI:
				err = km.SetOpenAIKey(apiKey)
			}
			if err != nil {
				fmt.Printf("⚠️  Failed to save to keychain: %v\n", err)
				fmt.Println("Saving to config file instead...")
			} else {
				fmt.Println("✅ API key saved to OS keychain (secure)")
				fmt.Printf("   📍 %s\n", keychainLocation())
				loadedCfg.API.UseKeychain = true
				stored = true
			}
		}
		if !stored {
			switch id.Provider {
			case llm.ProviderGoogle:
				loadedCfg.API.GoogleKey = apiKey
			case llm.ProviderOpenAI:
				loadedCfg.API.OpenAIKey = apiKey
			}
			loadedCfg.API.UseKeychain = false
			fmt.Println("✅ API key saved to config file (plaintext)")
			fmt.Println("   ⚠️  Consider using keychain for better security")
		}
	} else {
		fmt.Println("⏭️  Skipped (will resolve from environment at run time)")
	}
	fmt.Println()

	// Step 3: System prompt
	fmt.Println("Step 3/3: Default System Prompt")
	fmt.Println()
	fmt.Printf("Current: %q\n", loadedCfg.SystemPrompt)
	fmt.Print("Enter system prompt or press Enter to keep current: ")

	response, _ = reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response != "" {
		loadedCfg.SystemPrompt = response
	}
	fmt.Printf("✅ Using %q\n", loadedCfg.SystemPrompt)
	fmt.Println()

	// Save configuration
	fmt.Printf("Save to: %s\n", configPath)
	fmt.Print("Confirm? (Y/n): ")

	response, _ = reader.ReadString('\n')
	response = strings.TrimSpace(response)

	if response == "" || strings.ToLower(response) == "y" {
		if err := loadedCfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("✅ Configuration saved!")
		fmt.Println()
		fmt.Println("Try it:")
		fmt.Println(`  promptrun 'Where does "hello world" come from?'`)
	} else {
		fmt.Println("⏭️  Configuration not saved")
	}

	return nil
}

func keychainLocation() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain Access.app → 'promptrun'"
	case "windows":
		return "Windows Credential Manager → 'promptrun'"
	case "linux":
		return "Linux Secret Service (libsecret)"
	default:
		return "OS Keychain"
	}
}
