package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"museo/internal/services"
	"museo/internal/services/generation"
	"museo/internal/textutil"
)

type generateFlags struct {
	prompt         string
	negativePrompt string
	projectID      string
	cameraPosition string
	cameraRotation string
	cameraFOV      float64
	lightPosition  string
	lightIntensity float64
	jsonOut        bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Submit a single-frame generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildGenerationRequest(cmd, flags)
			if err != nil {
				return err
			}
			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			result, err := generation.NewClient(client).Submit(cmd.Context(), cred, req)
			if err != nil {
				return err
			}
			if flags.jsonOut {
				return writeJSON(cmd, result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGeneration(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.prompt, "prompt", "", "Text prompt (required)")
	cmd.Flags().StringVar(&flags.negativePrompt, "negative-prompt", "", "What to avoid")
	cmd.Flags().StringVar(&flags.projectID, "project", "", "Attach the generation to a project")
	cmd.Flags().StringVar(&flags.cameraPosition, "camera-position", "", "Camera position as x,y,z")
	cmd.Flags().StringVar(&flags.cameraRotation, "camera-rotation", "", "Camera rotation as x,y,z")
	cmd.Flags().Float64Var(&flags.cameraFOV, "camera-fov", 0, "Camera field of view in degrees")
	cmd.Flags().StringVar(&flags.lightPosition, "light-position", "", "Key light position as x,y,z")
	cmd.Flags().Float64Var(&flags.lightIntensity, "light-intensity", 0, "Key light intensity")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Output as JSON")
	return cmd
}

func buildGenerationRequest(cmd *cobra.Command, flags generateFlags) (generation.Request, error) {
	req := generation.Request{
		Prompt:         strings.TrimSpace(flags.prompt),
		NegativePrompt: strings.TrimSpace(flags.negativePrompt),
		ProjectID:      strings.TrimSpace(flags.projectID),
	}
	if req.Prompt == "" {
		return req, services.Wrap(services.ErrValidation, "cli", "generate", "--prompt is required", nil)
	}

	changed := cmd.Flags().Changed
	if changed("camera-position") || changed("camera-rotation") || changed("camera-fov") {
		if !changed("camera-position") || !changed("camera-rotation") || !changed("camera-fov") {
			return req, services.Wrap(services.ErrValidation, "cli", "generate", "--camera-position, --camera-rotation and --camera-fov must be set together", nil)
		}
		position, err := parseVec3(flags.cameraPosition)
		if err != nil {
			return req, services.Wrap(services.ErrValidation, "cli", "generate", "--camera-position", err)
		}
		rotation, err := parseVec3(flags.cameraRotation)
		if err != nil {
			return req, services.Wrap(services.ErrValidation, "cli", "generate", "--camera-rotation", err)
		}
		req.RawCamera = &generation.RawCamera{Position: position, Rotation: rotation, FOV: flags.cameraFOV}
	}

	if changed("light-position") || changed("light-intensity") {
		light := &generation.RawLight{}
		if changed("light-position") {
			position, err := parseVec3(flags.lightPosition)
			if err != nil {
				return req, services.Wrap(services.ErrValidation, "cli", "generate", "--light-position", err)
			}
			light.Position = &position
		}
		if changed("light-intensity") {
			intensity := flags.lightIntensity
			light.Intensity = &intensity
		}
		req.RawLight = light
	}
	return req, nil
}

func parseVec3(value string) (generation.Vec3, error) {
	var out generation.Vec3
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected x,y,z, got %q", value)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return out, fmt.Errorf("component %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

func newGenerationsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generations",
		Aliases: []string{"gen"},
		Short:   "Inspect generation history",
	}
	cmd.AddCommand(newGenerationsListCommand(ctx))
	cmd.AddCommand(newGenerationsShowCommand(ctx))
	cmd.AddCommand(newGenerationsHealthCommand(ctx))
	return cmd
}

func newGenerationsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			items, err := generation.NewClient(client).List(cmd.Context(), cred)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, items)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No generations yet.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{item.ID, string(item.Status), textutil.Truncate(item.Prompt, 48), item.CreatedAt})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Status", "Prompt", "Created"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newGenerationsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			item, err := generation.NewClient(client).Get(cmd.Context(), cred, args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, item)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGeneration(item))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newGenerationsHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the generation service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			health, err := generation.NewClient(client).Health(cmd.Context())
			if err != nil {
				return err
			}
			status := strings.TrimSpace(health.Status)
			if status == "" {
				status = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generation service: %s (%s)\n", status, client.BaseURL())
			return nil
		},
	}
}

func renderGeneration(item generation.Generation) string {
	status := string(item.Status)
	if item.Status != "" && !item.Status.Valid() {
		status += " (unrecognized)"
	}
	return renderDetails([][2]string{
		{"ID", item.ID},
		{"Status", status},
		{"Prompt", item.Prompt},
		{"Negative prompt", item.NegativePrompt},
		{"Project", item.ProjectID},
		{"Image", item.ImageURL},
		{"Video", item.VideoURL},
		{"Created", item.CreatedAt},
		{"Updated", item.UpdatedAt},
	})
}
