package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load evaluation config or a collection snapshot into the store",
}

var importProfilesCmd = &cobra.Command{
	Use:   "profiles <file>",
	Short: "Import quality profiles from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var profiles []profile.Profile
		return importBlob(cmd.Context(), args[0], "quality_profiles", &profiles)
	},
}

var importFormatsCmd = &cobra.Command{
	Use:   "formats <file>",
	Short: "Import custom format definitions from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var formats []profile.CustomFormat
		return importBlob(cmd.Context(), args[0], "custom_formats", &formats)
	},
}

var importSizesCmd = &cobra.Command{
	Use:   "sizes <file>",
	Short: "Import per-quality size limits from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var limits profile.SizeLimits
		return importBlob(cmd.Context(), args[0], "size_limits", &limits)
	},
}

var importCollectionCmd = &cobra.Command{
	Use:   "collection <file>",
	Short: "Import a collection snapshot from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCollection,
}

func init() {
	importCmd.AddCommand(importProfilesCmd, importFormatsCmd, importSizesCmd, importCollectionCmd)
	rootCmd.AddCommand(importCmd)
}

// importBlob validates that the file decodes into the expected shape, then
// stores it verbatim under key for the selected instance.
func importBlob(ctx context.Context, path, key string, shape any) error {
	if instanceName == "" {
		return fmt.Errorf("--instance is required for import")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, shape); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	a, err := setup(configPath, instanceName)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Save(ctx, key, instanceName, json.RawMessage(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	fmt.Printf("imported %s for instance %s\n", key, instanceName)
	return nil
}

func runImportCollection(cmd *cobra.Command, args []string) error {
	if instanceName == "" {
		return fmt.Errorf("--instance is required for import")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	var entries []library.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	a, err := setup(configPath, instanceName)
	if err != nil {
		return err
	}
	defer a.close()

	r := a.runners[0]
	if err := store.NewCollectionStore(a.store).SaveEntries(cmd.Context(), r.name, r.typ, entries); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	fmt.Printf("imported %d entries for instance %s\n", len(entries), r.name)
	return nil
}
