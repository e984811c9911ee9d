package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

type mockRepository struct {
	ListFunc       func(ctx context.Context) ([]domain.Announcement, error)
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Announcement, error)
	CreateFunc     func(ctx context.Context, a *domain.Announcement) error
	AddCommentFunc func(ctx context.Context, c *domain.Comment) error
}

func (m *mockRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	return m.ListFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Announcement, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) Create(ctx context.Context, a *domain.Announcement) error {
	return m.CreateFunc(ctx, a)
}

func (m *mockRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	return m.AddCommentFunc(ctx, c)
}

var fixedNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *AnnouncementService {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestList_Sorted(t *testing.T) {
	repo := &mockRepository{
		ListFunc: func(ctx context.Context) ([]domain.Announcement, error) {
			return []domain.Announcement{
				{ID: "old-low", Priority: domain.PriorityLow, CreatedAt: fixedNow.Add(-48 * time.Hour)},
				{ID: "urgent", Priority: domain.PriorityUrgent, CreatedAt: fixedNow.Add(-72 * time.Hour)},
				{ID: "pinned-low", Priority: domain.PriorityLow, Pinned: true, CreatedAt: fixedNow.Add(-96 * time.Hour)},
				{ID: "new-low", Priority: domain.PriorityLow, CreatedAt: fixedNow},
			}, nil
		},
	}

	list, err := newTestService(repo).List(context.Background())

	require.NoError(t, err)
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"pinned-low", "urgent", "new-low", "old-low"}, ids)
}

func TestList_Error(t *testing.T) {
	repo := &mockRepository{
		ListFunc: func(ctx context.Context) ([]domain.Announcement, error) {
			return nil, errors.New("boom")
		},
	}

	_, err := newTestService(repo).List(context.Background())
	assert.Error(t, err)
}

func TestCreate_DefaultsPriorityAndAuthor(t *testing.T) {
	var stored *domain.Announcement
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, a *domain.Announcement) error {
			stored = a
			return nil
		},
	}

	a, err := newTestService(repo).Create(context.Background(), dto.CreateAnnouncementRequest{
		Title:   "Fermeture lundi",
		Content: "Pas de livraison le lundi de Pâques",
	}, "admin@bakery.test")

	require.NoError(t, err)
	assert.Same(t, stored, a)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.PriorityMedium, a.Priority)
	assert.Equal(t, "admin@bakery.test", a.Author)
	assert.Equal(t, fixedNow, a.CreatedAt)
}

func TestCreate_Validation(t *testing.T) {
	_, err := newTestService(&mockRepository{}).Create(context.Background(), dto.CreateAnnouncementRequest{
		Priority: "critical",
	}, "admin")

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	fields := make([]string, len(ve.Details))
	for i, d := range ve.Details {
		fields[i] = d.Field
	}
	assert.Equal(t, []string{"title", "content", "priority"}, fields)
}

func TestAddComment(t *testing.T) {
	var stored *domain.Comment
	repo := &mockRepository{
		AddCommentFunc: func(ctx context.Context, c *domain.Comment) error {
			stored = c
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Announcement, error) {
			return &domain.Announcement{ID: id, Comments: []domain.Comment{*stored}}, nil
		},
	}

	a, err := newTestService(repo).AddComment(context.Background(), "ann-1", dto.AddCommentRequest{
		AuthorID:   "u-1",
		AuthorName: "Camille",
		AuthorRole: "Delivery",
		Content:    "Bien noté",
	})

	require.NoError(t, err)
	require.Len(t, a.Comments, 1)
	assert.Equal(t, "ann-1", stored.AnnouncementID)
	assert.Equal(t, domain.RoleDelivery, stored.AuthorRole)
	assert.Equal(t, fixedNow, stored.CreatedAt)
}

func TestAddComment_InvalidRole(t *testing.T) {
	_, err := newTestService(&mockRepository{}).AddComment(context.Background(), "ann-1", dto.AddCommentRequest{
		AuthorName: "Camille",
		AuthorRole: "baker",
		Content:    "Bien noté",
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "authorRole", ve.Details[0].Field)
}

func TestAddComment_AnnouncementMissing(t *testing.T) {
	repo := &mockRepository{
		AddCommentFunc: func(ctx context.Context, c *domain.Comment) error {
			return apperrors.NewNotFoundError("announcement with id ann-9 not found")
		},
	}

	_, err := newTestService(repo).AddComment(context.Background(), "ann-9", dto.AddCommentRequest{
		AuthorName: "Camille",
		AuthorRole: "admin",
		Content:    "?",
	})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
