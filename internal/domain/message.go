package domain

import "time"

// Message is a guest enquiry left through the public site
type Message struct {
	ID         string    `json:"id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail *string   `json:"guest_email"`
	GuestPhone *string   `json:"guest_phone"`
	Body       string    `json:"message"`
	Source     *string   `json:"source"`
	IsRead     bool      `json:"is_read"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contact returns the best way to reach the guest
func (m *Message) Contact() string {
	if m.GuestEmail != nil && *m.GuestEmail != "" {
		return *m.GuestEmail
	}
	if m.GuestPhone != nil {
		return *m.GuestPhone
	}
	return ""
}

type MessageFilter struct {
	UnreadOnly      bool
	IncludeArchived bool
}
