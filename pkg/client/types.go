package client

import (
	"errors"
	"fmt"
	"math"
	"net/http"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type Content struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	MediaURL    string `json:"mediaUrl"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type FeedItem struct {
	Content
	UserDetails *User    `json:"userDetails"`
	AvgRating   *float64 `json:"avgRating"`
}

type Rating struct {
	ID          string `json:"id"`
	ContentID   string `json:"contentId"`
	UserID      string `json:"userId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   string `json:"createdAt"`
	UserDetails *User  `json:"userDetails,omitempty"`
}

type ContentDetail struct {
	Content
	UserDetails *User    `json:"userDetails"`
	Ratings     []Rating `json:"ratings"`
}

type RatingList struct {
	Ratings       []Rating
	AverageRating *float64
	TotalRatings  int64
}

// ErrUnauthorized matches any APIError with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// RoundRating rounds an average for display. Stored and returned averages
// are never rounded.
func RoundRating(avg float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(avg*p) / p
}
