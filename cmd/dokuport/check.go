// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dokuport/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the generated Markdown output",
	Long: `Check renders every generated Markdown page and reports pages that fail
to build and local links (pages or media) whose targets do not exist in the
output tree.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("output-dir", defaultOutputDir, "generated import folder to validate")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromFlags(cmd)

	result, err := render.CheckTree(cfg.Output.Dir, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasProblems() {
		return fmt.Errorf("%d broken link(s), %d page failure(s)", result.BrokenLinks, result.Failed)
	}
	return nil
}
