// Schema command: emit the JSON Schema of the backup archive format.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/backup"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the backup archive format",
	Long: `Print the JSON Schema of the backup archive format.

The schema is derived from the archive types and their field
descriptions, and can be used to validate archives produced by other
tools before importing them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := jsonschema.Reflector{}
		schema := r.Reflect(&backup.Archive{})
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
