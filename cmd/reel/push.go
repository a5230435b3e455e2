package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <session-id> <video-file>",
	Short: "Upload a local recording into a session's video slot",
	Long: `Push uploads a video file from the local disk to the object store under
the session's identifier. Useful when the recorder's own upload failed and
the video only exists locally.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		if err := svc.UploadVideo(cmd.Context(), username, args[0], args[1]); err != nil {
			fatal("Error uploading video", err)
		}
		fmt.Println("Uploaded.")
	},
}

var initUserCmd = &cobra.Command{
	Use:   "init-user",
	Short: "Create the artifact folder layout for the configured user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, username := setup(cmd)

		if err := svc.EnsureUserLayout(cmd.Context(), username); err != nil {
			fatal("Error creating user layout", err)
		}
		fmt.Printf("Layout ready for %s\n", username)
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(initUserCmd)
}
