// Backup archive import/export commands.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <arquivo.json>",
	Short: "Export the project and all images to a backup archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		data, err := svc.ExportArchive(cmd.Context())
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		fmt.Printf("Backup gravado em %s (%d bytes)\n", args[0], len(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <arquivo.json>",
	Short: "Replace the project with the contents of a backup archive",
	Long: `Replace the project with the contents of a backup archive.

Accepts both the current {projectState, images} format and legacy
archives (a bare project state, possibly with inline image payloads,
which are migrated into the image store).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		if err := svc.ImportArchive(cmd.Context(), data); err != nil {
			return err
		}
		commitSnapshot(cmd.Context(), fmt.Sprintf("Backup restaurado de %s", args[0]))
		st := svc.State()
		fmt.Printf("Backup restaurado: %d pastas, %d artigos\n", len(st.Folders), len(st.Articles))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}
