package book

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookResponse 图书响应DTO
// 各用例共用,与HTTP层解耦
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       string(b.Genre),
		ISBN:        b.ISBN,
		Description: b.Description,
		Copies:      b.Copies,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
