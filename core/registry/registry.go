package registry

import "time"

// Registry is the event header a registry-scoped cart belongs to. Registry
// carts may aggregate items from several vendors, unlike storefront carts.
type Registry struct {
	ID        string     `json:"id" db:"registry_id"`
	HostID    string     `json:"hostId" db:"host_id"`
	Title     string     `json:"title" db:"title"`
	EventDate *time.Time `json:"eventDate" db:"event_date"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
