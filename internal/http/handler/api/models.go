package api

import "time"

// StatusResponse mirrors the historical response shape of the auth
// endpoints: a human-readable status plus the HTTP code.
type StatusResponse struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
