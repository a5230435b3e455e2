package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karsow/sessionreel"
)

var metaCmd = &cobra.Command{
	Use:   "meta <session-id>",
	Short: "Show a session's metadata document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		meta, err := svc.LoadMetadata(cmd.Context(), username, args[0])
		if err != nil {
			if sessionreel.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "No metadata for session %s\n", args[0])
				os.Exit(1)
			}
			fatal("Error loading metadata", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(meta); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <session-id> <title>",
	Short: "Set a session's title",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		meta, err := svc.LoadMetadata(cmd.Context(), username, args[0])
		if err != nil {
			fatal("Error loading metadata", err)
		}

		meta.Title = args[1]
		if err := svc.SaveMetadata(cmd.Context(), meta); err != nil {
			fatal("Error saving metadata", err)
		}
		fmt.Printf("Title set: %s\n", meta.Title)
	},
}

func init() {
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(titleCmd)
}
