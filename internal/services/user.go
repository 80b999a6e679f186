package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
	notifier   *NotificationService
	producer   queue.Publisher
	logger     *logger.Logger
}

func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, notifier *NotificationService, producer queue.Publisher, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		notifier:   notifier,
		producer:   producer,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=50"`
	DisplayName string `json:"display_name" binding:"max=50"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=50"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
}

// UserStats 用户主页顶部的计数
type UserStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Tweets    int64 `json:"tweets"`
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	// 检查用户名是否已存在
	existingUser, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("username already exists")
	}

	// 检查邮箱是否已存在
	existingUser, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("email already exists")
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: displayName,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// 发送用户创建事件
	event := queue.Event{
		Type:      queue.EventUserCreated,
		Timestamp: user.CreatedAt,
		Data: map[string]interface{}{
			"user_id":      user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	}
	if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish user created event")
	}

	s.logger.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("invalid username or password")
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	if !user.IsActive {
		return nil, errors.New("user account is inactive")
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID string, req *UpdateUserRequest) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// 更新字段
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// 发送用户更新事件
	event := queue.Event{
		Type:      queue.EventUserUpdated,
		Timestamp: user.UpdatedAt,
		Data: map[string]interface{}{
			"user_id":      user.ID,
			"display_name": user.DisplayName,
			"bio":          user.Bio,
		},
	}
	if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish user updated event")
	}

	s.logger.WithField("user_id", user.ID).Info("User updated successfully")
	return user, nil
}

// SetProfilePicture 把已上传的媒体绑定为头像
func (s *UserService) SetProfilePicture(ctx context.Context, userID string, mediaID uuid.UUID) (*models.User, error) {
	return s.setPicture(ctx, userID, mediaID, false)
}

// SetBannerPicture 把已上传的媒体绑定为横幅
func (s *UserService) SetBannerPicture(ctx context.Context, userID string, mediaID uuid.UUID) (*models.User, error) {
	return s.setPicture(ctx, userID, mediaID, true)
}

func (s *UserService) setPicture(ctx context.Context, userID string, mediaID uuid.UUID, banner bool) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	if banner {
		user.BannerPictureID = &mediaID
	} else {
		user.ProfilePictureID = &mediaID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Follow 关注指定用户名的用户
func (s *UserService) Follow(ctx context.Context, followerID, username string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("invalid follower ID: %w", err)
	}

	// 检查目标用户是否存在
	following, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get following: %w", err)
	}
	if following == nil {
		return errors.New("user not found")
	}

	if following.ID == followerUUID {
		return errors.New("cannot follow yourself")
	}

	// 检查是否已经关注
	existingFollow, err := s.followRepo.Get(ctx, followerUUID, following.ID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow != nil {
		return errors.New("already following")
	}

	follow := &models.Follow{
		FollowerID:  followerUUID,
		FollowingID: following.ID,
	}

	if err := s.followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	// 更新关注数和粉丝数
	if err := s.userRepo.UpdateFollowingCount(ctx, followerUUID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update following count")
	}
	if err := s.userRepo.UpdateFollowersCount(ctx, following.ID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update followers count")
	}

	// 通知被关注的用户
	notification := &models.Notification{
		RecipientID: following.ID,
		SenderID:    followerUUID,
		Type:        models.NotificationFollow,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.WithError(err).Error("Failed to create follow notification")
	}

	// 发送关注事件
	event := queue.Event{
		Type:      queue.EventFollowCreated,
		Timestamp: follow.CreatedAt,
		Data: queue.FollowEventData{
			FollowerID:  followerID,
			FollowingID: following.ID.String(),
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id": followerID,
		"following":   username,
	}).Info("User followed successfully")
	return nil
}

// Unfollow 取消关注指定用户名的用户
func (s *UserService) Unfollow(ctx context.Context, followerID, username string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("invalid follower ID: %w", err)
	}

	following, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get following: %w", err)
	}
	if following == nil {
		return errors.New("user not found")
	}

	existingFollow, err := s.followRepo.Get(ctx, followerUUID, following.ID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow == nil {
		return errors.New("not following")
	}

	if err := s.followRepo.Delete(ctx, followerUUID, following.ID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	if err := s.userRepo.UpdateFollowingCount(ctx, followerUUID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update following count")
	}
	if err := s.userRepo.UpdateFollowersCount(ctx, following.ID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update followers count")
	}

	// 发送取消关注事件
	event := queue.Event{
		Type:      queue.EventFollowDeleted,
		Timestamp: existingFollow.CreatedAt,
		Data: queue.FollowEventData{
			FollowerID:  followerID,
			FollowingID: following.ID.String(),
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow deleted event")
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id": followerID,
		"following":   username,
	}).Info("User unfollowed successfully")
	return nil
}

// IsFollowing 查询当前用户是否关注了指定用户名
func (s *UserService) IsFollowing(ctx context.Context, followerID, username string) (bool, error) {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return false, fmt.Errorf("invalid follower ID: %w", err)
	}

	following, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to get following: %w", err)
	}
	if following == nil {
		return false, errors.New("user not found")
	}

	return s.followRepo.IsFollowing(ctx, followerUUID, following.ID)
}

func (s *UserService) GetFollowers(ctx context.Context, username string, offset, limit int) ([]*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.GetFollowers(ctx, user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return followers, nil
}

func (s *UserService) GetFollowing(ctx context.Context, username string, offset, limit int) ([]*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.GetFollowing(ctx, user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return following, nil
}

// Stats 返回用户主页的计数信息
func (s *UserService) Stats(ctx context.Context, username string) (*UserStats, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &UserStats{
		Followers: followers,
		Following: following,
		Tweets:    user.TweetCount,
	}, nil
}

func (s *UserService) Search(ctx context.Context, query string, offset, limit int) ([]*models.User, error) {
	if query == "" {
		return []*models.User{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
