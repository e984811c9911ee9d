package domain

import (
	"sort"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBakery     Role = "bakery"
	RoleLaboratory Role = "laboratory"
	RoleDelivery   Role = "delivery"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBakery, RoleLaboratory, RoleDelivery:
		return true
	}
	return false
}

type Announcement struct {
	ID        string
	Title     string
	Content   string
	Priority  Priority
	Category  string
	Pinned    bool
	Author    string
	CreatedAt time.Time
	Comments  []Comment
}

type Comment struct {
	ID             string
	AnnouncementID string
	AuthorID       string
	AuthorName     string
	AuthorRole     Role
	Content        string
	CreatedAt      time.Time
}

// SortAnnouncements orders pinned announcements first, then by priority
// (urgent first), then newest first.
func SortAnnouncements(list []Announcement) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		ra, rb := rank(a.Priority), rank(b.Priority)
		if ra != rb {
			return ra < rb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func rank(p Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}
