package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		notifications, err := apiClient.GetNotifications(cmd.Context(), 0, 20)
		if err != nil {
			return err
		}

		if len(notifications) == 0 {
			fmt.Println("No notifications")
			return nil
		}

		for _, n := range notifications {
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s @%s %s\n", marker, n.Sender.Username, describeNotification(n.Type))
		}

		if markRead, _ := cmd.Flags().GetBool("mark-read"); markRead {
			if err := apiClient.MarkAllNotificationsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All notifications marked as read")
		}
		return nil
	},
}

func describeNotification(notificationType string) string {
	switch notificationType {
	case "like":
		return "liked your tweet"
	case "comment":
		return "commented on your tweet"
	case "retweet":
		return "retweeted your tweet"
	case "follow":
		return "followed you"
	case "mention":
		return "mentioned you"
	default:
		return notificationType
	}
}

func init() {
	notificationsCmd.Flags().Bool("mark-read", false, "mark all notifications as read")
	rootCmd.AddCommand(notificationsCmd)
}
