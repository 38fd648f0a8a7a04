package server

import (
	"newshub/internal/models"
	"newshub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/v1/news/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePageQuery(c, 20)
	comments, err := s.commentService.ListComments(c.UserContext(), newsID, page.Page, page.Size)
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Comments retrieved", comments)
}

// CreateComment handles POST /api/v1/news/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		NewsID:   newsID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusCreated, "Comment created", comment)
}

// UpdateComment handles PUT /api/v1/news/:id/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Comment updated", comment)
}

// DeleteComment handles DELETE /api/v1/news/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	_, err = s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	})
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Comment deleted", nil)
}
