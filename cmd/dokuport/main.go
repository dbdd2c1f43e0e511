// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dokuport CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dokuport CLI.
var rootCmd = &cobra.Command{
	Use:   "dokuport",
	Short: "Convert a DokuWiki site to Markdown for Wiki.js import",
	Long: `dokuport walks a DokuWiki data/pages tree and produces a parallel folder
of Markdown files plus copied media assets that Wiki.js can import through its
Markdown-folder wizard or a git-sync repository.

Each stage is a subcommand: convert transforms the pages tree, media copies
the media tree, check validates the generated output, preview renders a single
page, and status reports on the conversion manifest. The source wiki is only
ever read.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dokuport.yaml or ~/.config/dokuport/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dokuport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dokuport"))
		}
	}

	viper.SetEnvPrefix("DOKUPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
