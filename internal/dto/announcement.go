package dto

import "time"

type CreateAnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	Pinned   bool   `json:"pinned"`
	Author   string `json:"author"`
}

type AddCommentRequest struct {
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	AuthorRole string `json:"authorRole"`
	Content    string `json:"content"`
}

type AnnouncementDTO struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Priority  string       `json:"priority"`
	Category  string       `json:"category"`
	Pinned    bool         `json:"pinned"`
	Author    string       `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
	Comments  []CommentDTO `json:"comments"`
}

type CommentDTO struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AnnouncementListResponse struct {
	Announcements []AnnouncementDTO `json:"announcements"`
	Count         int               `json:"count"`
}
