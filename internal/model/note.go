package model

import "time"

type Note struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Heading   string    `db:"heading" json:"heading"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Computed fields (not in database)
	ContentHTML string `db:"-" json:"content_html,omitempty"`
}
