package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"bakerydash/internal/domain"
)

type announcementPayload struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Priority  string           `json:"priority"`
	Category  string           `json:"category"`
	Pinned    bool             `json:"pinned"`
	Author    string           `json:"author"`
	CreatedAt time.Time        `json:"createdAt"`
	Comments  []commentPayload `json:"comments"`
}

type commentPayload struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p announcementPayload) toDomain() domain.Announcement {
	a := domain.Announcement{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Priority:  domain.Priority(p.Priority),
		Category:  p.Category,
		Pinned:    p.Pinned,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
		Comments:  make([]domain.Comment, len(p.Comments)),
	}
	for i, c := range p.Comments {
		a.Comments[i] = domain.Comment{
			ID:             c.ID,
			AnnouncementID: p.ID,
			AuthorID:       c.AuthorID,
			AuthorName:     c.AuthorName,
			AuthorRole:     domain.Role(c.AuthorRole),
			Content:        c.Content,
			CreatedAt:      c.CreatedAt,
		}
	}
	return a
}

// AnnouncementClient reads and posts announcements through the upstream API.
type AnnouncementClient struct {
	client *Client
}

func (c *AnnouncementClient) List(ctx context.Context) ([]domain.Announcement, error) {
	var payload []announcementPayload
	if err := c.client.do(ctx, http.MethodGet, "/announcements", nil, nil, &payload); err != nil {
		return nil, err
	}

	list := make([]domain.Announcement, len(payload))
	for i, p := range payload {
		list[i] = p.toDomain()
	}
	return list, nil
}

func (c *AnnouncementClient) FindByID(ctx context.Context, id string) (*domain.Announcement, error) {
	var payload announcementPayload
	if err := c.client.do(ctx, http.MethodGet, "/announcements/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	a := payload.toDomain()
	return &a, nil
}

func (c *AnnouncementClient) Create(ctx context.Context, a *domain.Announcement) error {
	body := announcementPayload{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Priority:  string(a.Priority),
		Category:  a.Category,
		Pinned:    a.Pinned,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		Comments:  []commentPayload{},
	}
	return c.client.do(ctx, http.MethodPost, "/announcements", nil, body, nil)
}

func (c *AnnouncementClient) AddComment(ctx context.Context, comment *domain.Comment) error {
	body := commentPayload{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		AuthorRole: string(comment.AuthorRole),
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
	path := "/announcements/" + url.PathEscape(comment.AnnouncementID) + "/comments"
	return c.client.do(ctx, http.MethodPost, path, nil, body, nil)
}
