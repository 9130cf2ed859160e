package models

import "time"

// Attachment is a file reference carried on a comment.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Comment is a discussion entry on a project. Content is 1-2000 characters
// after trimming; the service layer enforces this before any write.
type Comment struct {
	ID          string       `json:"id"`
	Project     string       `json:"project"`
	Author      string       `json:"author"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
