package service

import (
	"context"
	"testing"

	"newshub/internal/models"
	"newshub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

// newsRepoStub is a stub for repository.NewsRepository.
type newsRepoStub struct {
	createFn              func(context.Context, *models.News) error
	getByIDFn             func(context.Context, uint) (*models.News, error)
	getPublishedByIDFn    func(context.Context, uint) (*models.News, error)
	listFn                func(context.Context, repository.NewsFilter) ([]*models.News, int64, error)
	trendingFn            func(context.Context, int) ([]*models.News, error)
	updateFn              func(context.Context, *models.News) error
	deleteFn              func(context.Context, uint) error
	upsertBySlugFn        func(context.Context, *models.News) (bool, error)
	incrementViewCountFn  func(context.Context, uint) error
	adjustLikeCountFn     func(context.Context, uint, int) error
	adjustCommentCountFn  func(context.Context, uint, int) error
	incrementShareCountFn func(context.Context, uint) error
}

func (s *newsRepoStub) Create(ctx context.Context, n *models.News) error { return s.createFn(ctx, n) }
func (s *newsRepoStub) GetByID(ctx context.Context, id uint) (*models.News, error) {
	return s.getByIDFn(ctx, id)
}
func (s *newsRepoStub) GetPublishedByID(ctx context.Context, id uint) (*models.News, error) {
	return s.getPublishedByIDFn(ctx, id)
}
func (s *newsRepoStub) List(ctx context.Context, f repository.NewsFilter) ([]*models.News, int64, error) {
	return s.listFn(ctx, f)
}
func (s *newsRepoStub) Trending(ctx context.Context, limit int) ([]*models.News, error) {
	return s.trendingFn(ctx, limit)
}
func (s *newsRepoStub) Update(ctx context.Context, n *models.News) error { return s.updateFn(ctx, n) }
func (s *newsRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *newsRepoStub) UpsertBySlug(ctx context.Context, n *models.News) (bool, error) {
	return s.upsertBySlugFn(ctx, n)
}
func (s *newsRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}
func (s *newsRepoStub) AdjustLikeCount(ctx context.Context, id uint, delta int) error {
	return s.adjustLikeCountFn(ctx, id, delta)
}
func (s *newsRepoStub) AdjustCommentCount(ctx context.Context, id uint, delta int) error {
	return s.adjustCommentCountFn(ctx, id, delta)
}
func (s *newsRepoStub) IncrementShareCount(ctx context.Context, id uint) error {
	return s.incrementShareCountFn(ctx, id)
}

// noopNewsRepo returns a stub that serves one published article with ID 1.
func noopNewsRepo() *newsRepoStub {
	published := func(_ context.Context, id uint) (*models.News, error) {
		if id != 1 {
			return nil, gorm.ErrRecordNotFound
		}
		return &models.News{ID: id, Title: "hello", Status: models.NewsStatusPublished}, nil
	}
	return &newsRepoStub{
		createFn:           func(_ context.Context, _ *models.News) error { return nil },
		getByIDFn:          published,
		getPublishedByIDFn: published,
		listFn: func(_ context.Context, _ repository.NewsFilter) ([]*models.News, int64, error) {
			return nil, 0, nil
		},
		trendingFn:            func(_ context.Context, _ int) ([]*models.News, error) { return nil, nil },
		updateFn:              func(_ context.Context, _ *models.News) error { return nil },
		deleteFn:              func(_ context.Context, _ uint) error { return nil },
		upsertBySlugFn:        func(_ context.Context, _ *models.News) (bool, error) { return true, nil },
		incrementViewCountFn:  func(_ context.Context, _ uint) error { return nil },
		adjustLikeCountFn:     func(_ context.Context, _ uint, _ int) error { return nil },
		adjustCommentCountFn:  func(_ context.Context, _ uint, _ int) error { return nil },
		incrementShareCountFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// interactionRepoStub is a stub for repository.InteractionRepository.
type interactionRepoStub struct {
	insertIfAbsentFn  func(context.Context, uint, uint, models.InteractionType) (bool, error)
	deleteIfPresentFn func(context.Context, uint, uint, models.InteractionType) (bool, error)
	recordFn          func(context.Context, uint, uint, models.InteractionType) error
	existsFn          func(context.Context, uint, uint, models.InteractionType) (bool, error)
	activeTypesFn     func(context.Context, uint, uint) (map[string]bool, error)
	countForNewsFn    func(context.Context, uint, models.InteractionType) (int64, error)
	listNewsIDsFn     func(context.Context, uint, models.InteractionType, int, int) ([]uint, error)
}

func (s *interactionRepoStub) InsertIfAbsent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	return s.insertIfAbsentFn(ctx, userID, newsID, t)
}
func (s *interactionRepoStub) DeleteIfPresent(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	return s.deleteIfPresentFn(ctx, userID, newsID, t)
}
func (s *interactionRepoStub) Record(ctx context.Context, userID, newsID uint, t models.InteractionType) error {
	return s.recordFn(ctx, userID, newsID, t)
}
func (s *interactionRepoStub) Exists(ctx context.Context, userID, newsID uint, t models.InteractionType) (bool, error) {
	return s.existsFn(ctx, userID, newsID, t)
}
func (s *interactionRepoStub) ActiveTypes(ctx context.Context, userID, newsID uint) (map[string]bool, error) {
	return s.activeTypesFn(ctx, userID, newsID)
}
func (s *interactionRepoStub) CountForNews(ctx context.Context, newsID uint, t models.InteractionType) (int64, error) {
	return s.countForNewsFn(ctx, newsID, t)
}
func (s *interactionRepoStub) ListNewsIDs(ctx context.Context, userID uint, t models.InteractionType, limit, offset int) ([]uint, error) {
	return s.listNewsIDsFn(ctx, userID, t, limit, offset)
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		insertIfAbsentFn: func(_ context.Context, _, _ uint, _ models.InteractionType) (bool, error) {
			return true, nil
		},
		deleteIfPresentFn: func(_ context.Context, _, _ uint, _ models.InteractionType) (bool, error) {
			return true, nil
		},
		recordFn: func(_ context.Context, _, _ uint, _ models.InteractionType) error { return nil },
		existsFn: func(_ context.Context, _, _ uint, _ models.InteractionType) (bool, error) {
			return false, nil
		},
		activeTypesFn: func(_ context.Context, _, _ uint) (map[string]bool, error) {
			return map[string]bool{}, nil
		},
		countForNewsFn: func(_ context.Context, _ uint, _ models.InteractionType) (int64, error) {
			return 0, nil
		},
		listNewsIDsFn: func(_ context.Context, _ uint, _ models.InteractionType, _, _ int) ([]uint, error) {
			return nil, nil
		},
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listActiveFn func(context.Context) ([]*models.Category, error)
	getByNameFn  func(context.Context, string) (*models.Category, error)
	upsertFn     func(context.Context, *models.Category) error
}

func (s *categoryRepoStub) ListActive(ctx context.Context) ([]*models.Category, error) {
	return s.listActiveFn(ctx)
}
func (s *categoryRepoStub) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getByNameFn(ctx, name)
}
func (s *categoryRepoStub) Upsert(ctx context.Context, c *models.Category) error {
	return s.upsertFn(ctx, c)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listActiveFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		getByNameFn:  func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		upsertFn:     func(_ context.Context, _ *models.Category) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByNewsFn  func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	listRepliesFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByNewsFn(ctx, newsID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByNewsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		listRepliesFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := models.AsAppError(err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "CONFLICT")
}
