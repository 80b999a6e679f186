package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if err := apiClient.Follow(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Now following @%s\n", args[0])
		return nil
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <username>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if err := apiClient.Unfollow(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Unfollowed @%s\n", args[0])
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <tweet-id>",
	Short: "Like a tweet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if err := apiClient.LikeTweet(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Liked")
		return nil
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <tweet-id>",
	Short: "Remove a like",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if err := apiClient.UnlikeTweet(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Unliked")
		return nil
	},
}

var retweetCmd = &cobra.Command{
	Use:   "retweet <tweet-id>",
	Short: "Retweet a tweet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		comment, _ := cmd.Flags().GetString("comment")
		if err := apiClient.Retweet(cmd.Context(), args[0], comment); err != nil {
			return err
		}
		fmt.Println("Retweeted")
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show a user's profile and stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		user, err := apiClient.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		stats, err := apiClient.GetUserStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("@%s (%s)\n", user.Username, user.DisplayName)
		if user.Bio != "" {
			fmt.Println(user.Bio)
		}
		fmt.Printf("Tweets: %d  Followers: %d  Following: %d\n",
			stats.Tweets, stats.Followers, stats.Following)
		return nil
	},
}

func init() {
	retweetCmd.Flags().String("comment", "", "quote the tweet with a comment")
	rootCmd.AddCommand(followCmd, unfollowCmd, likeCmd, unlikeCmd, retweetCmd, profileCmd)
}
