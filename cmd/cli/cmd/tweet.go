package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var mediaFile string

var tweetCmd = &cobra.Command{
	Use:   "tweet <content>",
	Short: "Post a tweet, optionally with a media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if mediaFile != "" {
			data, err := os.ReadFile(mediaFile)
			if err != nil {
				return err
			}

			contentType := contentTypeOf(mediaFile)
			tweet, err := apiClient.CreateTweetWithMedia(cmd.Context(), args[0], filepath.Base(mediaFile), contentType, data)
			if err != nil {
				return err
			}

			fmt.Printf("Tweeted: %s (id %s)\n", tweet.Content, tweet.ID)
			return nil
		}

		tweet, err := apiClient.CreateTweet(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}

		fmt.Printf("Tweeted: %s (id %s)\n", tweet.Content, tweet.ID)
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the latest tweets",
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		tweets, err := apiClient.GetTimeline(cmd.Context(), 0, 20)
		if err != nil {
			return err
		}

		for _, t := range tweets {
			fmt.Printf("@%s: %s  [♥ %d  ↻ %d  💬 %d]\n",
				t.User.Username, t.Content, t.LikeCount, t.RetweetCount, t.CommentCount)
		}
		return nil
	},
}

var deleteTweetCmd = &cobra.Command{
	Use:   "delete <tweet-id>",
	Short: "Delete one of your tweets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requireLogin()

		if err := apiClient.DeleteTweet(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Tweet deleted")
		return nil
	},
}

func contentTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

func init() {
	tweetCmd.Flags().StringVarP(&mediaFile, "media", "m", "", "attach an image or video file")
	rootCmd.AddCommand(tweetCmd, timelineCmd, deleteTweetCmd)
}
