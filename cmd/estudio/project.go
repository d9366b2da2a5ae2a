// Commands that create and inspect the local project.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/docstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new empty project in the data directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		if err := svc.Reset(cmd.Context()); err != nil {
			return err
		}
		commitSnapshot(cmd.Context(), "Novo projeto")
		fmt.Printf("Projeto criado em %s\n", cfg.DataDir)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show project statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		st := svc.State()
		sections, fields, images := 0, 0, 0
		for i := range st.Articles {
			a := &st.Articles[i]
			sections += len(a.Sections)
			for j := range a.Sections {
				s := &a.Sections[j]
				switch s.Kind {
				case models.SectionKindFields:
					fields += len(s.Fields)
				case models.SectionKindImages:
					images += len(s.Images)
				}
			}
		}
		fmt.Printf("Pastas:   %d\n", len(st.Folders))
		fmt.Printf("Artigos:  %d\n", len(st.Articles))
		fmt.Printf("Seções:   %d (%d campos, %d imagens)\n", sections, fields, images)
		if sess := svc.Session(); sess.SelectedFolderID != "" {
			if f, ok := st.Folder(sess.SelectedFolderID); ok {
				fmt.Printf("Pasta inicial: %s\n", f.Name)
			}
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project document and report external changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := docstore.New(cfg.DocumentPath(), cfg.MaxDocumentBytes)
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		err := docs.Watch(ctx, func() {
			slog.Info("Project document modified", "path", docs.Path())
		})
		if err != nil {
			return err
		}
		fmt.Printf("Observando %s (Ctrl-C para sair)\n", docs.Path())
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd, infoCmd, watchCmd)
}
