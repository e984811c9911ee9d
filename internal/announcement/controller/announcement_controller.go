package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bakerydash/internal/commons"
	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

type AnnouncementService interface {
	List(ctx context.Context) ([]domain.Announcement, error)
	Create(ctx context.Context, req dto.CreateAnnouncementRequest, actor string) (*domain.Announcement, error)
	AddComment(ctx context.Context, announcementID string, req dto.AddCommentRequest) (*domain.Announcement, error)
}

type Controller struct {
	service AnnouncementService
	logger  *zap.Logger
}

func NewController(service AnnouncementService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Post("/{announcementId}/comments", c.AddComment)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	list, err := c.service.List(r.Context())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	response := dto.AnnouncementListResponse{
		Announcements: make([]dto.AnnouncementDTO, len(list)),
		Count:         len(list),
	}
	for i := range list {
		response.Announcements[i] = toAnnouncementDTO(&list[i])
	}

	commons.WriteJSON(w, logger, http.StatusOK, response)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	var req dto.CreateAnnouncementRequest
	if !decode(w, r, logger, &req) {
		return
	}

	a, err := c.service.Create(r.Context(), req, commons.Actor(r))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, toAnnouncementDTO(a))
}

func (c *Controller) AddComment(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	var req dto.AddCommentRequest
	if !decode(w, r, logger, &req) {
		return
	}

	a, err := c.service.AddComment(r.Context(), chi.URLParam(r, "announcementId"), req)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, toAnnouncementDTO(a))
}

func decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func toAnnouncementDTO(a *domain.Announcement) dto.AnnouncementDTO {
	comments := make([]dto.CommentDTO, len(a.Comments))
	for i, c := range a.Comments {
		comments[i] = dto.CommentDTO{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			AuthorRole: string(c.AuthorRole),
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		}
	}

	return dto.AnnouncementDTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Priority:  string(a.Priority),
		Category:  a.Category,
		Pinned:    a.Pinned,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		Comments:  comments,
	}
}
