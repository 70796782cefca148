package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"museo/internal/services/presets"
	"museo/internal/textutil"
)

var presetCategories = []string{presets.CategoryLighting, presets.CategoryCamera, presets.CategoryDirectors}

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	var category string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List lighting, camera and director presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category = strings.ToLower(strings.TrimSpace(category))
			if category != "" && !isPresetCategory(category) {
				return fmt.Errorf("unknown category %q (want %s)", category, strings.Join(presetCategories, ", "))
			}

			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.optionalCredentials(cmd.Context())
			if err != nil {
				return err
			}
			collection, err := presets.NewClient(client).All(cmd.Context(), cred)
			if err != nil {
				return err
			}

			if jsonOut {
				if category != "" {
					return writeJSON(cmd, collection.Category(category))
				}
				return writeJSON(cmd, collection)
			}

			categories := presetCategories
			if category != "" {
				categories = []string{category}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPresets(collection, categories))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only show one category (lighting, camera, directors)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func isPresetCategory(name string) bool {
	for _, c := range presetCategories {
		if c == name {
			return true
		}
	}
	return false
}

func renderPresets(collection presets.Collection, categories []string) string {
	title := cases.Title(language.Und)
	rows := make([][]string, 0)
	for _, category := range categories {
		for _, preset := range collection.Category(category) {
			rows = append(rows, []string{title.String(category), preset.ID(), summarizePreset(preset)})
		}
	}
	if len(rows) == 0 {
		return "No presets available."
	}
	return renderTable([]string{"Category", "ID", "Attributes"}, rows, nil)
}

// summarizePreset renders everything but id and type as sorted key=value
// pairs.
func summarizePreset(preset presets.Preset) string {
	if !preset.IsObject() {
		return textutil.Truncate(string(preset.Raw()), 72)
	}
	keys := make([]string, 0, len(preset.Fields))
	for key := range preset.Fields {
		if key == "id" || key == "type" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		var value string
		switch v := preset.Fields[key].(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		default:
			data, err := json.Marshal(v)
			if err != nil {
				value = fmt.Sprint(v)
			} else {
				value = string(data)
			}
		}
		parts = append(parts, key+"="+value)
	}
	return textutil.Truncate(strings.Join(parts, " "), 72)
}
