package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneforge/internal/domain/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE:  runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project, its versions, and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var (
	projectName string
	projectDesc string
)

func init() {
	projectCmd.AddCommand(projectCreateCmd, projectListCmd, projectShowCmd, projectDeleteCmd)

	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name (required)")
	projectCreateCmd.Flags().StringVar(&projectDesc, "desc", "", "Project description")
	projectCreateCmd.MarkFlagRequired("name")
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	proj, err := a.projects.Create(cmd.Context(), project.CreateRequest{
		Name:        projectName,
		Description: projectDesc,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created project: %s\n", proj.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	summaries, err := a.projects.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSIONS\tRENDERED\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			truncateID(s.ID), truncate(s.Name, 40), s.VersionCount, s.RenderedCount,
			s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	proj, err := a.projects.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("ID:          %s\n", proj.ID)
	fmt.Printf("Name:        %s\n", proj.Name)
	if proj.Description != "" {
		fmt.Printf("Description: %s\n", proj.Description)
	}
	if proj.CurrentVersionID != nil {
		fmt.Printf("Current:     %s\n", *proj.CurrentVersionID)
	}
	fmt.Printf("Created:     %s\n", proj.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", proj.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.projects.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted project: %s\n", args[0])
	return nil
}
