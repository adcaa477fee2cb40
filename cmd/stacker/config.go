package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/stacker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		fmt.Println("config: ok")
		return nil
	},
}

var printDefaults bool

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Example: `  # Effective config (file merged over defaults)
  stacker config print

  # Built-in defaults
  stacker config print --defaults`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if !printDefaults {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = res.Config
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configExplainCmd = &cobra.Command{
	Use:   "explain PATH",
	Short: "Show a config value and where it was set",
	Example: `  stacker config explain mod_key
  stacker config explain 'keybindings.$mod-k'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		fmt.Printf("path: %s\n", args[0])
		fmt.Printf("source: %s\n", config.FormatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return nil
	},
}

func init() {
	configPrintCmd.Flags().BoolVar(&printDefaults, "defaults", false, "print built-in defaults (no files)")
	configCmd.AddCommand(configValidateCmd, configPrintCmd, configExplainCmd)
	rootCmd.AddCommand(configCmd)
}
