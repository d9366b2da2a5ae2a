// Render command: project snapshot to a paginated HTML document.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/export"
)

var (
	flagRenderFolders []string
	flagRenderTitle   string
)

var renderCmd = &cobra.Command{
	Use:   "render <saida.html>",
	Short: "Render the project to a printable HTML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		blobs, err := blobstore.Open(cfg.BlobDir())
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r := export.NewRenderer(blobs)
		if err := r.Render(f, svc.State(), flagRenderTitle, flagRenderFolders); err != nil {
			return err
		}
		fmt.Printf("Documento gerado em %s\n", args[0])
		return nil
	},
}

func init() {
	renderCmd.Flags().StringSliceVar(&flagRenderFolders, "folders", nil, "Folder ids to include (default: all)")
	renderCmd.Flags().StringVar(&flagRenderTitle, "title", "Estúdio do Escritor", "Document title")
	rootCmd.AddCommand(renderCmd)
}
