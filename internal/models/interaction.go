package models

import (
	"time"

	"github.com/google/uuid"
)

type Like struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type Comment struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	Author     string    `json:"author,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"max=2000"`
}
