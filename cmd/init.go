package cmd

import (
	"fmt"

	"github.com/kyco/deadlockdev/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new deadlockdev.yaml configuration file",
	Long:  `Creates a deadlockdev.yaml file (or the path given by --config) with default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Exists(configPath) {
			prompt := promptui.Select{
				Label:     fmt.Sprintf("%s already exists. Overwrite?", configPath),
				Items:     []string{"Yes", "No"},
				CursorPos: 0,
			}

			_, result, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}

			if result != "Yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}

		fmt.Printf("✓ Created %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
