package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/karsow/sessionreel"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage a session's annotation log",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <session-id> <text>",
	Short: "Append a note to a session's annotation log",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		entry := sessionreel.AnnotationEntry{
			Note:      args[1],
			Timestamp: time.Now().UnixMilli(),
		}
		if err := svc.AppendAnnotation(cmd.Context(), username, args[0], entry); err != nil {
			fatal("Error appending annotation", err)
		}
		fmt.Printf("Noted at %d\n", entry.Timestamp)
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <session-id> <timestamp>",
	Short: "Delete the note at an exact timestamp (epoch milliseconds)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		ts, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fatal("Error parsing timestamp", err)
		}
		if err := svc.DeleteAnnotation(cmd.Context(), username, args[0], ts); err != nil {
			fatal("Error deleting annotation", err)
		}
		fmt.Println("Deleted.")
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRmCmd)
}
