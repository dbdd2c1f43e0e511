// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dokuport/pkg/types"
)

const (
	defaultPagesDir  = "data/pages"
	defaultOutputDir = "wikijs-import"
)

// stringSetting resolves a string option: an explicitly set flag wins, then
// the viper config key, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// boolSetting resolves a bool option with the same precedence as
// stringSetting.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

// siteConfigFromFlags assembles the run configuration from flags and the
// loaded config file.
func siteConfigFromFlags(cmd *cobra.Command) types.SiteConfig {
	return types.SiteConfig{
		Source: types.SourceConfig{
			PagesDir: stringSetting(cmd, "pages-dir", "source.pages_dir"),
			MediaDir: stringSetting(cmd, "media-dir", "source.media_dir"),
		},
		Output: types.OutputConfig{
			Dir:   stringSetting(cmd, "output-dir", "output.dir"),
			Force: boolSetting(cmd, "force", "output.force"),
		},
		Convert: types.ConvertConfig{
			Backend:       types.ConversionBackend(stringSetting(cmd, "backend", "convert.backend")),
			SkipUnchanged: boolSetting(cmd, "skip-unchanged", "convert.skip_unchanged"),
		},
		Manifest: types.ManifestConfig{
			Path: stringSetting(cmd, "manifest", "manifest.path"),
		},
		Verbose: boolSetting(cmd, "verbose", "verbose"),
	}
}
