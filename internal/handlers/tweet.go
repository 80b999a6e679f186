package handlers

import (
	"net/http"
	"strings"

	"github.com/HediM1312/twitter-clone/internal/middleware"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *services.TweetService
	mediaService *services.MediaService
}

func NewTweetHandler(tweetService *services.TweetService, mediaService *services.MediaService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		mediaService: mediaService,
	}
}

func (h *TweetHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet created successfully",
		"tweet":   tweet,
	})
}

// CreateWithMedia 处理 multipart 请求：先存媒体再发推
func (h *TweetHandler) CreateWithMedia(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.PostForm("content")
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	req := services.CreateTweetRequest{Content: content}
	if tags := c.PostForm("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	media, err := h.mediaService.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.MediaID = media.ID.String()

	tweet, err := h.tweetService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet created successfully",
		"tweet":   tweet,
	})
}

// Timeline 返回全站最新推文
func (h *TweetHandler) Timeline(c *gin.Context) {
	offset, limit := pagination(c)

	tweets, err := h.tweetService.GetLatest(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (h *TweetHandler) Get(c *gin.Context) {
	tweet, err := h.tweetService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweet": tweet})
}

func (h *TweetHandler) UserTweets(c *gin.Context) {
	username := c.Param("username")
	offset, limit := pagination(c)

	tweets, err := h.tweetService.GetByUsername(c.Request.Context(), username, offset, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (h *TweetHandler) LikedTweets(c *gin.Context) {
	username := c.Param("username")
	offset, limit := pagination(c)

	tweets, err := h.tweetService.GetLikedByUsername(c.Request.Context(), username, offset, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (h *TweetHandler) RetweetedTweets(c *gin.Context) {
	username := c.Param("username")
	offset, limit := pagination(c)

	tweets, err := h.tweetService.GetRetweetedByUsername(c.Request.Context(), username, offset, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (h *TweetHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted successfully"})
}

func (h *TweetHandler) Search(c *gin.Context) {
	query := c.Query("q")
	offset, limit := pagination(c)

	tweets, err := h.tweetService.Search(c.Request.Context(), query, offset, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}
