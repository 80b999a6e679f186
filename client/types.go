package client

import "time"

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	Bio              string    `json:"bio"`
	ProfilePictureID *string   `json:"profile_picture_id"`
	BannerPictureID  *string   `json:"banner_picture_id"`
	Followers        int64     `json:"followers"`
	Following        int64     `json:"following"`
	TweetCount       int64     `json:"tweet_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type Tweet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	User         User      `json:"user"`
	Content      string    `json:"content"`
	MediaID      *string   `json:"media_id"`
	MediaType    string    `json:"media_type"`
	Tags         []string  `json:"tags"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	RetweetCount int64     `json:"retweet_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	TweetID   string    `json:"tweet_id"`
	UserID    string    `json:"user_id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id"`
	Sender      User      `json:"sender"`
	Type        string    `json:"type"`
	TweetID     *string   `json:"tweet_id"`
	CommentID   *string   `json:"comment_id"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Tweets    int64 `json:"tweets"`
}

type ReactionSummary struct {
	TweetID   string           `json:"tweet_id"`
	Total     int              `json:"total"`
	Reactions map[string]int64 `json:"reactions"`
}

type Media struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	MediaType   string    `json:"media_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type FaceDetection struct {
	Box             []int              `json:"box"`
	Emotions        map[string]float64 `json:"emotions"`
	DominantEmotion string             `json:"dominant_emotion"`
	Confidence      float64            `json:"confidence"`
}

type EmotionDetection struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Emotions []FaceDetection `json:"emotions"`
}
