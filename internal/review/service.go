package review

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"halalbites/internal/httperr"
	"halalbites/internal/moderation"
	"halalbites/internal/storage"
)

var ErrUnsafeContent = errors.New("review rejected by moderation")

type Service struct {
	repo      Repository
	storage   storage.Uploader
	moderator moderation.Checker
	maxImages int
}

func NewService(repo Repository, store storage.Uploader, moderator moderation.Checker, maxImages int) *Service {
	if maxImages <= 0 {
		maxImages = 10
	}
	return &Service{repo: repo, storage: store, moderator: moderator, maxImages: maxImages}
}

// --------------------------------------------------
// Create review (moderated comment, one per user)
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, rev *Review) error {
	if rev.RestaurantID == "" || rev.UserID == "" {
		return errors.New("missing required fields")
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}

	if rev.Comment != "" {
		verdict := s.moderator.Check(ctx, moderation.Request{
			ReviewText: rev.Comment,
			Type:       moderation.TypeReview,
		})
		if !verdict.Safe {
			return fmt.Errorf("%w: %s", ErrUnsafeContent, verdict.Reason)
		}
	}

	return s.repo.Create(ctx, rev)
}

// --------------------------------------------------
// Update own review
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, reviewID, userID string, rating int, comment string) (*Review, error) {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, httperr.ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	if comment != "" && comment != rev.Comment {
		verdict := s.moderator.Check(ctx, moderation.Request{
			ReviewText: comment,
			Type:       moderation.TypeReview,
		})
		if !verdict.Safe {
			return nil, fmt.Errorf("%w: %s", ErrUnsafeContent, verdict.Reason)
		}
	}

	rev.Rating = rating
	rev.Comment = comment
	if err := s.repo.Update(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// --------------------------------------------------
// Delete (author, or admin/moderator)
// --------------------------------------------------
func (s *Service) Delete(ctx context.Context, reviewID, userID, role string) error {
	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev.UserID != userID && role != "admin" && role != "moderator" {
		return httperr.ErrForbidden
	}
	return s.repo.Delete(ctx, reviewID)
}

func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Review, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// --------------------------------------------------
// Review photos (moderation gate, best-effort batch)
// --------------------------------------------------
type ImageOutcome struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (s *Service) UploadImages(
	ctx context.Context,
	reviewID string,
	userID string,
	files []*multipart.FileHeader,
) ([]ImageOutcome, int, error) {

	rev, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, 0, err
	}
	if rev.UserID != userID {
		return nil, 0, httperr.ErrForbidden
	}

	dropped := 0
	if len(files) > s.maxImages {
		dropped = len(files) - s.maxImages
		files = files[:s.maxImages]
	}

	outcomes := make([]ImageOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, s.uploadOne(ctx, reviewID, file))
	}
	return outcomes, dropped, nil
}

func (s *Service) uploadOne(ctx context.Context, reviewID string, file *multipart.FileHeader) ImageOutcome {
	outcome := ImageOutcome{Filename: file.Filename}

	f, err := file.Open()
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not read file"
		return outcome
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not read file"
		return outcome
	}

	verdict := s.moderator.Check(ctx, moderation.Request{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Type:        moderation.TypeImage,
	})
	if !verdict.Safe {
		outcome.Status = "rejected"
		outcome.Reason = verdict.Reason
		return outcome
	}

	key := storage.ObjectKey("reviews/"+reviewID, file.Filename)
	url, err := s.storage.UploadBytes(ctx, key, data, file.Header.Get("Content-Type"))
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "upload failed"
		return outcome
	}

	if err := s.repo.AddImage(ctx, reviewID, url); err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not persist image"
		return outcome
	}

	outcome.Status = "uploaded"
	outcome.URL = url
	return outcome
}
