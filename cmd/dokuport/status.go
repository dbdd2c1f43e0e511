// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dokuport/internal/manifest"
	"github.com/pdiddy/dokuport/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the conversion manifest",
	Long: `Status reads the manifest database written by convert and prints the
recorded outcome for each page plus summary counts. Use --failed to list
only pages whose last conversion failed.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("output-dir", defaultOutputDir, "generated import folder")
	statusCmd.Flags().String("manifest", "", "manifest database path (default: <output-dir>/"+manifest.DefaultFile+")")
	statusCmd.Flags().Bool("failed", false, "list only failed pages")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromFlags(cmd)

	path := manifest.PathFor(cfg)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no manifest at %s (run convert first): %w", path, err)
	}

	store, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	entries, err := store.List(ctx)
	if err != nil {
		return err
	}

	failedOnly, _ := cmd.Flags().GetBool("failed")
	for _, e := range entries {
		if failedOnly && e.Status != types.StatusFailed {
			continue
		}
		fmt.Printf("%-10s %-40s %s\n", e.Status, e.ID, e.ConvertedAt.Format("2006-01-02 15:04:05"))
	}

	counts, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d pages: %d converted, %d skipped, %d unchanged, %d failed\n",
		len(entries),
		counts[types.StatusConverted], counts[types.StatusSkipped],
		counts[types.StatusUnchanged], counts[types.StatusFailed])
	return nil
}
