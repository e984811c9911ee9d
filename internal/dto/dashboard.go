package dto

type DashboardResponse struct {
	OrdersByStatus      map[string]int `json:"ordersByStatus"`
	PendingAmount       float64        `json:"pendingAmount"`
	PendingItems        int            `json:"pendingItems"`
	ActiveProducts      int            `json:"activeProducts"`
	UnavailableProducts int            `json:"unavailableProducts"`
	PinnedAnnouncements int            `json:"pinnedAnnouncements"`
	UrgentAnnouncements int            `json:"urgentAnnouncements"`
}
