package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's sessions, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		sessions, err := svc.BuildIndex(cmd.Context(), username)
		if err != nil {
			fatal("Error listing sessions", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(sessions); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return
		}

		for _, s := range sessions {
			started := ""
			if s.VideoStart > 0 {
				started = time.UnixMilli(s.VideoStart).Format("2006-01-02 15:04:05")
			}
			annotated := ""
			if s.AnnotationsURL != "" {
				annotated = " [annotated]"
			}
			fmt.Printf("%s  %-30s %s (%s)%s\n", s.ID, s.Title, started, s.Video.Source, annotated)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
