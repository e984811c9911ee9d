package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bakerydash/internal/domain"
	"bakerydash/internal/errors"
)

type MySQLAnnouncementRepository struct {
	db *sql.DB
}

func NewMySQLAnnouncementRepository(db *sql.DB) *MySQLAnnouncementRepository {
	return &MySQLAnnouncementRepository{db: db}
}

// List returns every announcement with its comments, oldest comment first.
func (r *MySQLAnnouncementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	query := `
		SELECT id, title, content, priority, category, pinned, author, createdAt
		FROM Announcements
		ORDER BY createdAt DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.Category, &a.Pinned, &a.Author, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning announcement row: %w", err)
		}
		a.Comments = []domain.Comment{}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating announcement rows: %w", err)
	}

	if err := r.attachComments(ctx, announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *MySQLAnnouncementRepository) FindByID(ctx context.Context, id string) (*domain.Announcement, error) {
	query := `
		SELECT id, title, content, priority, category, pinned, author, createdAt
		FROM Announcements
		WHERE id = ?`

	var a domain.Announcement
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.Category, &a.Pinned, &a.Author, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("announcement with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying announcement by id: %w", err)
	}

	a.Comments = []domain.Comment{}
	list := []domain.Announcement{a}
	if err := r.attachComments(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *MySQLAnnouncementRepository) attachComments(ctx context.Context, announcements []domain.Announcement) error {
	if len(announcements) == 0 {
		return nil
	}

	index := make(map[string]int, len(announcements))
	placeholders := make([]string, len(announcements))
	args := make([]interface{}, len(announcements))
	for i, a := range announcements {
		index[a.ID] = i
		placeholders[i] = "?"
		args[i] = a.ID
	}

	query := fmt.Sprintf(`
		SELECT id, announcementId, authorId, authorName, authorRole, content, createdAt
		FROM AnnouncementComments
		WHERE announcementId IN (%s)
		ORDER BY createdAt ASC, id ASC`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying announcement comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.AnnouncementID, &c.AuthorID, &c.AuthorName, &c.AuthorRole, &c.Content, &c.CreatedAt); err != nil {
			return fmt.Errorf("scanning comment row: %w", err)
		}
		i := index[c.AnnouncementID]
		announcements[i].Comments = append(announcements[i].Comments, c)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating comment rows: %w", err)
	}
	return nil
}

func (r *MySQLAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO Announcements (id, title, content, priority, category, pinned, author, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Content, a.Priority, a.Category, a.Pinned, a.Author, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting announcement: %w", err)
	}
	return nil
}

// AddComment stores c. A missing announcement is reported as not found.
func (r *MySQLAnnouncementRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO AnnouncementComments (id, announcementId, authorId, authorName, authorRole, content, createdAt)
		SELECT ?, id, ?, ?, ?, ?, ? FROM Announcements WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		c.ID, c.AuthorID, c.AuthorName, c.AuthorRole, c.Content, c.CreatedAt, c.AnnouncementID,
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("announcement with id %s not found", c.AnnouncementID))
	}
	return nil
}
