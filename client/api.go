package client

import (
	"bytes"
	"context"
	"fmt"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Login exchanges credentials for a bearer token. The token is not
// attached to the client automatically; see Session.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var result TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(&result).
		Post("/token")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Register(ctx context.Context, username, email, password, displayName string) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username":     username,
			"email":        email,
			"password":     password,
			"display_name": displayName,
		}).
		SetResult(&result).
		Post("/api/v1/users")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.User, nil
}

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/users/me")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.User, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/users/" + username)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.User, nil
}

func (c *Client) GetUserStats(ctx context.Context, username string) (*UserStats, error) {
	var result UserStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/users/%s/stats", username))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var result struct {
		Users []User `json:"users"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&result).
		Get("/api/v1/users/search")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Users, nil
}

func (c *Client) Follow(ctx context.Context, username string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/v1/users/%s/follow", username))
	return checkResponse(resp, err)
}

func (c *Client) Unfollow(ctx context.Context, username string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/users/%s/unfollow", username))
	return checkResponse(resp, err)
}

// FollowStatus reports whether the authenticated user follows username.
func (c *Client) FollowStatus(ctx context.Context, username string) (bool, error) {
	var result struct {
		Following bool `json:"following"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/users/%s/follow_status", username))
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}

	return result.Following, nil
}

func (c *Client) GetTimeline(ctx context.Context, offset, limit int) ([]Tweet, error) {
	var result struct {
		Tweets []Tweet `json:"tweets"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": fmt.Sprint(offset),
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get("/api/v1/tweets")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Tweets, nil
}

func (c *Client) GetUserTweets(ctx context.Context, username string, offset, limit int) ([]Tweet, error) {
	return c.tweetList(ctx, fmt.Sprintf("/api/v1/users/%s/tweets", username), offset, limit)
}

func (c *Client) GetLikedTweets(ctx context.Context, username string, offset, limit int) ([]Tweet, error) {
	return c.tweetList(ctx, fmt.Sprintf("/api/v1/users/%s/liked-tweets", username), offset, limit)
}

func (c *Client) GetRetweetedTweets(ctx context.Context, username string, offset, limit int) ([]Tweet, error) {
	return c.tweetList(ctx, fmt.Sprintf("/api/v1/users/%s/retweeted-tweets", username), offset, limit)
}

func (c *Client) tweetList(ctx context.Context, path string, offset, limit int) ([]Tweet, error) {
	var result struct {
		Tweets []Tweet `json:"tweets"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": fmt.Sprint(offset),
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get(path)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Tweets, nil
}

func (c *Client) CreateTweet(ctx context.Context, content string, tags []string) (*Tweet, error) {
	return c.createTweet(ctx, map[string]interface{}{
		"content": content,
		"tags":    NormalizeTags(tags),
	})
}

// UploadMedia stores a media file and returns its descriptor for use in
// a subsequent tweet creation.
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, data []byte) (*Media, error) {
	var result struct {
		Media Media `json:"media"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, bytes.NewReader(data)).
		SetResult(&result).
		Post("/api/v1/media/upload")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.Media, nil
}

// CreateTweetWithMedia uploads the file, then posts a tweet referencing
// it. A failed second call leaves the uploaded media unreferenced.
func (c *Client) CreateTweetWithMedia(ctx context.Context, content string, filename, contentType string, media []byte) (*Tweet, error) {
	uploaded, err := c.UploadMedia(ctx, filename, contentType, media)
	if err != nil {
		return nil, err
	}

	return c.createTweet(ctx, map[string]interface{}{
		"content":  content,
		"media_id": uploaded.ID,
	})
}

func (c *Client) createTweet(ctx context.Context, body map[string]interface{}) (*Tweet, error) {
	var result struct {
		Tweet Tweet `json:"tweet"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/api/v1/tweets")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.Tweet, nil
}

func (c *Client) GetTweet(ctx context.Context, tweetID string) (*Tweet, error) {
	var result struct {
		Tweet Tweet `json:"tweet"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/tweets/" + tweetID)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.Tweet, nil
}

func (c *Client) DeleteTweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/v1/tweets/" + tweetID)
	return checkResponse(resp, err)
}

func (c *Client) LikeTweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/v1/tweets/%s/like", tweetID))
	return checkResponse(resp, err)
}

func (c *Client) UnlikeTweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/tweets/%s/unlike", tweetID))
	return checkResponse(resp, err)
}

// LikeStatus reports whether the authenticated user liked the tweet.
func (c *Client) LikeStatus(ctx context.Context, tweetID string) (bool, error) {
	var result struct {
		Liked bool `json:"liked"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/tweets/%s/like_status", tweetID))
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}

	return result.Liked, nil
}

func (c *Client) Retweet(ctx context.Context, tweetID, comment string) error {
	req := c.http.R().SetContext(ctx)
	if comment != "" {
		req.SetBody(map[string]string{"comment": comment})
	}
	resp, err := req.Post(fmt.Sprintf("/api/v1/tweets/%s/retweet", tweetID))
	return checkResponse(resp, err)
}

func (c *Client) Unretweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/tweets/%s/unretweet", tweetID))
	return checkResponse(resp, err)
}

// RetweetStatus reports whether the authenticated user retweeted the tweet.
func (c *Client) RetweetStatus(ctx context.Context, tweetID string) (bool, error) {
	var result struct {
		Retweeted bool `json:"retweeted"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/tweets/%s/retweet_status", tweetID))
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}

	return result.Retweeted, nil
}

func (c *Client) CreateComment(ctx context.Context, tweetID, content string) (*Comment, error) {
	var result struct {
		Comment Comment `json:"comment"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"tweet_id": tweetID,
			"content":  content,
		}).
		SetResult(&result).
		Post("/api/v1/comments")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.Comment, nil
}

func (c *Client) GetComments(ctx context.Context, tweetID string, offset, limit int) ([]Comment, error) {
	var result struct {
		Comments []Comment `json:"comments"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": fmt.Sprint(offset),
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/tweets/%s/comments", tweetID))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Comments, nil
}

func (c *Client) GetNotifications(ctx context.Context, offset, limit int) ([]Notification, error) {
	var result struct {
		Notifications []Notification `json:"notifications"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": fmt.Sprint(offset),
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get("/api/v1/notifications")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Notifications, nil
}

func (c *Client) NotificationCount(ctx context.Context) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/notifications/count")
	if err := checkResponse(resp, err); err != nil {
		return 0, err
	}

	return result.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Put(fmt.Sprintf("/api/v1/notifications/%s/read", notificationID))
	return checkResponse(resp, err)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Put("/api/v1/notifications/read-all")
	return checkResponse(resp, err)
}

// React submits a base64 webcam snapshot as an emotion reaction to a tweet.
func (c *Client) React(ctx context.Context, tweetID, image string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"image": image}).
		Post(fmt.Sprintf("/api/v1/tweets/%s/reactions", tweetID))
	return checkResponse(resp, err)
}

// RemoveReaction withdraws the caller's emotion reaction from a tweet.
func (c *Client) RemoveReaction(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/tweets/%s/reactions", tweetID))
	return checkResponse(resp, err)
}

func (c *Client) GetReactions(ctx context.Context, tweetID string) (*ReactionSummary, error) {
	var result ReactionSummary
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/tweets/%s/reactions/summary", tweetID))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateProfile sends only the fields that are set.
func (c *Client) UpdateProfile(ctx context.Context, displayName, bio *string) (*User, error) {
	body := map[string]string{}
	if displayName != nil {
		body["display_name"] = *displayName
	}
	if bio != nil {
		body["bio"] = *bio
	}

	var result struct {
		User User `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Put("/api/v1/users/profile")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.User, nil
}

func (c *Client) UploadProfilePhoto(ctx context.Context, filename, contentType string, data []byte) (*User, error) {
	return c.uploadPhoto(ctx, "/api/v1/users/profile-photo", filename, contentType, data)
}

func (c *Client) UploadBannerPhoto(ctx context.Context, filename, contentType string, data []byte) (*User, error) {
	return c.uploadPhoto(ctx, "/api/v1/users/banner-photo", filename, contentType, data)
}

func (c *Client) uploadPhoto(ctx context.Context, path, filename, contentType string, data []byte) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, bytes.NewReader(data)).
		SetResult(&result).
		Post(path)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result.User, nil
}

func (c *Client) GetFollowers(ctx context.Context, username string, offset, limit int) ([]User, error) {
	return c.userList(ctx, fmt.Sprintf("/api/v1/users/%s/followers", username), offset, limit)
}

func (c *Client) GetFollowing(ctx context.Context, username string, offset, limit int) ([]User, error) {
	return c.userList(ctx, fmt.Sprintf("/api/v1/users/%s/following", username), offset, limit)
}

func (c *Client) userList(ctx context.Context, path string, offset, limit int) ([]User, error) {
	var result struct {
		Users []User `json:"users"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": fmt.Sprint(offset),
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get(path)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return result.Users, nil
}

func (c *Client) BookmarkTweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/v1/tweets/%s/bookmark", tweetID))
	return checkResponse(resp, err)
}

func (c *Client) UnbookmarkTweet(ctx context.Context, tweetID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/tweets/%s/unbookmark", tweetID))
	return checkResponse(resp, err)
}

func (c *Client) GetBookmarks(ctx context.Context, offset, limit int) ([]Tweet, error) {
	return c.tweetList(ctx, "/api/v1/bookmarks", offset, limit)
}

// DetectEmotion runs the webcam frame through the emotion service
// without recording a reaction.
func (c *Client) DetectEmotion(ctx context.Context, image string) (*EmotionDetection, error) {
	var result EmotionDetection
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"image": image}).
		SetResult(&result).
		Post("/api/v1/emotion")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}
