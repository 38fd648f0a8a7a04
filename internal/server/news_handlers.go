package server

import (
	"newshub/internal/models"
	"newshub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNewsList handles GET /api/v1/news
func (s *Server) GetNewsList(c *fiber.Ctx) error {
	page := parsePageQuery(c, s.config.DefaultPageSize)

	list, err := s.newsService.ListNews(c.UserContext(), service.ListNewsInput{
		Page:     page.Page,
		Size:     page.Size,
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
		SortBy:   c.Query("sort", "published_at"),
		Order:    c.Query("order", "desc"),
	})
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "News list retrieved", list)
}

// GetNewsDetail handles GET /api/v1/news/:id
func (s *Server) GetNewsDetail(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.newsService.GetNewsDetail(c.UserContext(), newsID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "News detail retrieved", detail)
}

// LikeNews handles POST /api/v1/news/:id/like
func (s *Server) LikeNews(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.newsService.ToggleLike(c.UserContext(), currentUserID(c), newsID)
	if err != nil {
		return fail(c, err)
	}

	message := "News liked"
	if result.Action == models.ToggleActionRemoved {
		message = "Like removed"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, result)
}

// FavoriteNews handles POST /api/v1/news/:id/favorite
func (s *Server) FavoriteNews(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.newsService.ToggleFavorite(c.UserContext(), currentUserID(c), newsID)
	if err != nil {
		return fail(c, err)
	}

	message := "News favorited"
	if result.Action == models.ToggleActionRemoved {
		message = "Favorite removed"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, result)
}

// ShareNews handles POST /api/v1/news/:id/share
func (s *Server) ShareNews(c *fiber.Ctx) error {
	newsID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.newsService.ShareNews(c.UserContext(), currentUserID(c), newsID)
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "News shared", result)
}

// GetTrending handles GET /api/v1/news/trending/hot
func (s *Server) GetTrending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", s.config.DefaultPageSize)

	items, err := s.newsService.Trending(c.UserContext(), limit)
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Trending news retrieved", items)
}

// GetCategories handles GET /api/v1/news/categories/list
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.newsService.Categories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Categories retrieved", categories)
}

// GetFavorites handles GET /api/v1/users/me/favorites
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	page := parsePageQuery(c, s.config.DefaultPageSize)

	items, err := s.newsService.Favorites(c.UserContext(), currentUserID(c), page.Page, page.Size)
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Favorites retrieved", items)
}
