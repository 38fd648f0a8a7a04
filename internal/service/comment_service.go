package service

import (
	"context"
	"errors"
	"log/slog"

	"newshub/internal/middleware"
	"newshub/internal/models"
	"newshub/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService handles threaded comments on articles.
type CommentService struct {
	commentRepo repository.CommentRepository
	newsRepo    repository.NewsRepository
}

type CreateCommentInput struct {
	UserID   uint
	NewsID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// CommentPage is one page of top-level comments with replies attached.
type CommentPage struct {
	Items   []*models.Comment `json:"items"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
	HasNext bool              `json:"has_next"`
}

func NewCommentService(commentRepo repository.CommentRepository, newsRepo repository.NewsRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
	}
}

// CreateComment posts a comment or a reply on a published article.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.newsRepo.GetPublishedByID(ctx, in.NewsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("news", in.NewsID)
		}
		return nil, models.NewInternalError(err)
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, models.NewNotFoundError("comment", *in.ParentID)
		}
		if parent.NewsID != in.NewsID {
			return nil, models.NewValidationError("Parent comment belongs to a different article")
		}
		// One level of nesting only; replies to replies attach to the thread root
		if parent.ParentID != nil {
			in.ParentID = parent.ParentID
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		NewsID:   in.NewsID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.newsRepo.AdjustCommentCount(ctx, in.NewsID, 1); err != nil {
		middleware.Logger.WarnContext(ctx, "comment counter update failed",
			slog.Uint64("news_id", uint64(in.NewsID)),
			slog.String("error", err.Error()))
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns one page of an article's top-level comments with each
// thread's replies inlined.
func (s *CommentService) ListComments(ctx context.Context, newsID uint, page, size int) (*CommentPage, error) {
	if _, err := s.newsRepo.GetPublishedByID(ctx, newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("news", newsID)
		}
		return nil, models.NewInternalError(err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	items, total, err := s.commentRepo.ListByNews(ctx, newsID, size, (page-1)*size)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, c := range items {
		replies, err := s.commentRepo.ListReplies(ctx, c.ID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		for _, r := range replies {
			c.Replies = append(c.Replies, *r)
		}
	}

	return &CommentPage{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: total > int64(page)*int64(size),
	}, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, models.NewNotFoundError("comment", in.CommentID)
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, models.NewNotFoundError("comment", in.CommentID)
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.newsRepo.AdjustCommentCount(ctx, comment.NewsID, -1); err != nil {
		middleware.Logger.WarnContext(ctx, "comment counter update failed",
			slog.Uint64("news_id", uint64(comment.NewsID)),
			slog.String("error", err.Error()))
	}

	return comment, nil
}
