package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Announcement, error)
	FindByID(ctx context.Context, id string) (*domain.Announcement, error)
	Create(ctx context.Context, a *domain.Announcement) error
	AddComment(ctx context.Context, c *domain.Comment) error
}

type AnnouncementService struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, logger: logger, now: time.Now}
}

// List returns announcements pinned first, then most urgent, then newest.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortAnnouncements(list)
	return list, nil
}

func (s *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest, actor string) (*domain.Announcement, error) {
	priority := domain.Priority(strings.ToLower(req.Priority))
	if priority == "" {
		priority = domain.PriorityMedium
	}

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Title) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(req.Content) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "content", Message: "content is required"})
	}
	if !priority.Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "priority", Message: "priority must be low, medium, high or urgent"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	author := req.Author
	if author == "" {
		author = actor
	}

	a := &domain.Announcement{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Priority:  priority,
		Category:  req.Category,
		Pinned:    req.Pinned,
		Author:    author,
		CreatedAt: s.now().UTC(),
		Comments:  []domain.Comment{},
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement created", zap.String("announcementId", a.ID), zap.String("priority", string(a.Priority)), zap.Bool("pinned", a.Pinned))
	return a, nil
}

// AddComment appends a comment and returns the announcement with all its comments.
func (s *AnnouncementService) AddComment(ctx context.Context, announcementID string, req dto.AddCommentRequest) (*domain.Announcement, error) {
	role := domain.Role(strings.ToLower(req.AuthorRole))

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Content) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "content", Message: "content is required"})
	}
	if strings.TrimSpace(req.AuthorName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "authorName", Message: "authorName is required"})
	}
	if !role.Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "authorRole", Message: "authorRole must be admin, bakery, laboratory or delivery"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	c := &domain.Comment{
		ID:             uuid.NewString(),
		AnnouncementID: announcementID,
		AuthorID:       req.AuthorID,
		AuthorName:     req.AuthorName,
		AuthorRole:     role,
		Content:        req.Content,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added", zap.String("announcementId", announcementID), zap.String("role", string(role)))
	return s.repo.FindByID(ctx, announcementID)
}
