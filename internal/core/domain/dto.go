package domain

import "time"

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful login: a bearer token plus the
// public user representation.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// BlogRequest is the create/update request body for a blog post.
type BlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Blog is the outward-facing representation of a blog post.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the embedded author summary on a blog post.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Pagination describes the page window returned by list endpoints.
type Pagination struct {
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	Page    int   `json:"page"`
}

// BlogList is the payload of list endpoints.
type BlogList struct {
	Blogs      []Blog     `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}
