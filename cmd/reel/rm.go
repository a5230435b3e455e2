package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <session-id>",
	Short: "Delete all artifacts belonging to one session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		report, err := svc.DeleteSession(cmd.Context(), username, args[0])
		if err != nil {
			fatal("Error deleting session", err)
		}

		for _, o := range report.Outcomes {
			if o.Err != nil {
				fmt.Printf("failed  %s: %v\n", o.Key, o.Err)
			} else {
				fmt.Printf("deleted %s\n", o.Key)
			}
		}
		if !report.OK() {
			fatal("Error deleting session", report.Err())
		}
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
