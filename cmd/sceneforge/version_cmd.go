package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneforge/internal/domain/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage a project's version history",
}

var versionAddCmd = &cobra.Command{
	Use:   "add [project-id]",
	Short: "Append a code snapshot from a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionAdd,
}

var versionListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List versions in creation order",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionList,
}

var versionShowCmd = &cobra.Command{
	Use:   "show [project-id] [version-id]",
	Short: "Show version details",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionShow,
}

var versionPromoteCmd = &cobra.Command{
	Use:   "promote [project-id] [version-id]",
	Short: "Set a version as the project's current working state",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionPromote,
}

var (
	versionFile   string
	versionPrompt string
	versionProv   string
	versionParent string
	showCode      bool
)

func init() {
	versionCmd.AddCommand(versionAddCmd, versionListCmd, versionShowCmd, versionPromoteCmd)

	versionAddCmd.Flags().StringVar(&versionFile, "file", "", "Path to the scene source file (required)")
	versionAddCmd.Flags().StringVar(&versionPrompt, "prompt", "", "Prompt that produced this code")
	versionAddCmd.Flags().StringVar(&versionProv, "provenance", "manual-edit", "Code origin (ai-generated, manual-edit, variable-tweak)")
	versionAddCmd.Flags().StringVar(&versionParent, "parent", "", "Parent version ID")
	versionAddCmd.MarkFlagRequired("file")

	versionShowCmd.Flags().BoolVar(&showCode, "code", false, "Print the full code instead of details")
}

func runVersionAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	code, err := os.ReadFile(versionFile)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	prov, err := version.ParseProvenance(versionProv)
	if err != nil {
		return err
	}

	req := version.CreateRequest{
		ProjectID:  args[0],
		Code:       string(code),
		Provenance: prov,
	}
	if versionPrompt != "" {
		req.Prompt = &versionPrompt
	}
	if versionParent != "" {
		req.ParentID = &versionParent
	}

	ver, err := a.versions.Create(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Printf("Created version: %s\n", ver.ID)
	return nil
}

func runVersionList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	versions, err := a.versions.List(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		fmt.Println("No versions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROVENANCE\tPARENT\tRENDERED\tCREATED")
	for _, v := range versions {
		parent := ""
		if v.ParentID != nil {
			parent = truncateID(*v.ParentID)
		}
		rendered := ""
		if v.Rendered() {
			rendered = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(v.ID), v.Provenance, parent, rendered,
			v.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runVersionShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ver, err := a.versions.Get(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	if showCode {
		fmt.Print(ver.Code)
		return nil
	}

	fmt.Printf("ID:         %s\n", ver.ID)
	fmt.Printf("Project:    %s\n", ver.ProjectID)
	fmt.Printf("Provenance: %s\n", ver.Provenance)
	if ver.ParentID != nil {
		fmt.Printf("Parent:     %s\n", *ver.ParentID)
	}
	if ver.Prompt != nil {
		fmt.Printf("Prompt:     %s\n", truncate(*ver.Prompt, 80))
	}
	if ver.VideoPath != nil {
		fmt.Printf("Video:      %s\n", *ver.VideoPath)
	}
	if ver.ThumbnailPath != nil {
		fmt.Printf("Thumbnail:  %s\n", *ver.ThumbnailPath)
	}
	fmt.Printf("Created:    %s\n", ver.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runVersionPromote(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.projects.SetCurrentVersion(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("Project %s now points at version %s\n", args[0], args[1])
	return nil
}
