package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"museo/internal/services"
	"museo/internal/services/projects"
	"museo/internal/textutil"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectsListCommand(ctx))
	cmd.AddCommand(newProjectsShowCommand(ctx))
	cmd.AddCommand(newProjectsCreateCommand(ctx))
	cmd.AddCommand(newProjectsUpdateCommand(ctx))
	cmd.AddCommand(newProjectsDeleteCommand(ctx))
	cmd.AddCommand(newProjectsSaveSceneCommand(ctx))
	return cmd
}

func (c *commandContext) projectsClient(cmd *cobra.Command) (*projects.Client, error) {
	client, err := c.backendClient(cmd)
	if err != nil {
		return nil, err
	}
	return projects.NewClient(client), nil
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	var page, perPage int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.List(cmd.Context(), cred, page, perPage)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if len(result.Projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			rows := make([][]string, 0, len(result.Projects))
			for _, p := range result.Projects {
				rows = append(rows, []string{p.ID, p.Name, p.Status, strconv.Itoa(len(p.Generations)), p.UpdatedAt})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Status", "Generations", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			shown := page
			if shown <= 0 {
				shown = projects.DefaultPage
			}
			fmt.Fprintf(out, "Page %d of %d (%d projects)\n", shown, result.Pages, result.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", projects.DefaultPage, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", projects.DefaultPerPage, "Projects per page")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newProjectsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.Get(cmd.Context(), cred, args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, project)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProject(project))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newProjectsCreateCommand(ctx *commandContext) *cobra.Command {
	var name, description, status, sceneFile string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := projects.Request{
				Name:        strings.TrimSpace(name),
				Description: strings.TrimSpace(description),
				Status:      strings.ToLower(strings.TrimSpace(status)),
			}
			if sceneFile != "" {
				scene, err := readScene(cmd, sceneFile)
				if err != nil {
					return err
				}
				req.SceneData = scene
			}
			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.Create(cmd.Context(), cred, req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, project)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.ID, project.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (draft, completed, archived)")
	cmd.Flags().StringVar(&sceneFile, "scene-file", "", "Initial scene JSON file (- for stdin)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newProjectsUpdateCommand(ctx *commandContext) *cobra.Command {
	var name, description, status string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update selected project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch projects.Patch
			if cmd.Flags().Changed("name") {
				value := strings.TrimSpace(name)
				patch.Name = &value
			}
			if cmd.Flags().Changed("description") {
				value := strings.TrimSpace(description)
				patch.Description = &value
			}
			if cmd.Flags().Changed("status") {
				value := strings.ToLower(strings.TrimSpace(status))
				patch.Status = &value
			}
			if patch.Empty() {
				return services.Wrap(services.ErrValidation, "cli", "projects update", "nothing to update; set --name, --description or --status", nil)
			}

			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			project, err := client.Update(cmd.Context(), cred, args[0], patch)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, project)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status (draft, completed, archived)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newProjectsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.Delete(cmd.Context(), cred, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !result.Success {
				fmt.Fprintf(out, "Backend did not confirm deletion of project %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "Deleted project %s\n", args[0])
			return nil
		},
	}
}

func newProjectsSaveSceneCommand(ctx *commandContext) *cobra.Command {
	var sceneFile string

	cmd := &cobra.Command{
		Use:   "save-scene <id>",
		Short: "Save scene JSON to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := readScene(cmd, sceneFile)
			if err != nil {
				return err
			}
			client, err := ctx.projectsClient(cmd)
			if err != nil {
				return err
			}
			cred, err := ctx.credentials(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := client.SaveScene(cmd.Context(), cred, args[0], scene)
			if err != nil {
				return err
			}
			return writeRawJSON(cmd, raw)
		},
	}
	cmd.Flags().StringVarP(&sceneFile, "file", "f", "-", "Scene JSON file (- for stdin)")
	return cmd
}

func readScene(cmd *cobra.Command, path string) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	if !json.Valid(data) {
		return nil, services.Wrap(services.ErrValidation, "cli", "read scene", "scene is not valid JSON", nil)
	}
	return json.RawMessage(data), nil
}

func renderProject(p projects.Project) string {
	details := renderDetails([][2]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Status", p.Status},
		{"Scene", sceneSummary(p.SceneData)},
		{"Created", p.CreatedAt},
		{"Updated", p.UpdatedAt},
	})
	if len(p.Generations) == 0 {
		return details
	}
	rows := make([][]string, 0, len(p.Generations))
	for _, g := range p.Generations {
		rows = append(rows, []string{g.ID, string(g.Status), textutil.Truncate(g.Prompt, 48)})
	}
	return details + "\n" + renderTable([]string{"Generation", "Status", "Prompt"}, rows, nil)
}

func sceneSummary(scene json.RawMessage) string {
	trimmed := strings.TrimSpace(string(scene))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	return fmt.Sprintf("%d bytes", len(trimmed))
}
