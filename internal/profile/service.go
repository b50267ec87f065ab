package profile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"

	"halalbites/internal/moderation"
	"halalbites/internal/storage"
)

var (
	ErrInvalidUsername = errors.New("username must be 3-30 characters: letters, digits, underscores")
	ErrUnsafeAvatar    = errors.New("avatar rejected by content moderation")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// --------------------------------------------------
// Service
// --------------------------------------------------

type Service struct {
	repo      Repository
	storage   storage.Uploader
	moderator moderation.Checker
}

func NewService(repo Repository, store storage.Uploader, moderator moderation.Checker) *Service {
	return &Service{repo: repo, storage: store, moderator: moderator}
}

func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) GetPublic(ctx context.Context, username string) (*Public, error) {
	return s.repo.GetPublicByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) UpdateUsername(ctx context.Context, userID, username string) error {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return s.repo.UpdateUsername(ctx, userID, username)
}

// UploadAvatar moderates the image, stores it, and points the profile at it.
func (s *Service) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}

	verdict := s.moderator.Check(ctx, moderation.Request{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Type:        moderation.TypeAvatar,
	})
	if !verdict.Safe {
		if verdict.Reason != "" {
			return "", fmt.Errorf("%w: %s", ErrUnsafeAvatar, verdict.Reason)
		}
		return "", ErrUnsafeAvatar
	}

	key := storage.ObjectKey("avatars/"+userID, file.Filename)
	url, err := s.storage.UploadBytes(ctx, key, data, file.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
