package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/1broseidon/stacker/internal/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "stacker",
		Short: "stacker - a stacking window manager for X11",
		Long: `stacker is a stacking window manager for X11 with nine workspaces,
a per-workspace tasklist, keyboard window cycling and mouse move/resize.

A running window manager can be inspected and driven from the command line,
a terminal viewer, an optional HTTP API and an MCP server.`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stacker/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("display", "", "X display to manage (default is $DISPLAY)")
	rootCmd.PersistentFlags().String("http", "", "serve the HTTP API on this address, e.g. 127.0.0.1:7878")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("display", rootCmd.PersistentFlags().Lookup("display"))
	viper.BindPFlag("http_listen", rootCmd.PersistentFlags().Lookup("http"))
}

func initConfig() {
	viper.SetEnvPrefix("stacker")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig loads the config file and applies flag and environment
// overrides on top of it.
func loadConfig() (*config.LoadResult, error) {
	path := cfgFile
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	overridden := false
	for key, dst := range map[string]*string{
		"log_level":   &res.Config.LogLevel,
		"display":     &res.Config.Display,
		"http_listen": &res.Config.HTTPListen,
	} {
		if v := viper.GetString(key); viper.IsSet(key) && v != "" {
			*dst = v
			overridden = true
		}
	}
	if overridden {
		if err := res.Config.Validate(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
