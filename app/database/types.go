package database

import (
	"encoding/json"
	"time"
)

type Article struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Date            string     `json:"date"`
	Excerpt         string     `json:"excerpt"`
	Image           string     `json:"image"`
	ImageAlt        *string    `json:"image_alt,omitempty"` // NULL until an import or edit supplies it
	Content         string     `json:"content"`
	Related         []string   `json:"related,omitempty"` // slugs of related articles
	MetaDescription string     `json:"meta_description"`
	MetaKeywords    string     `json:"meta_keywords"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// Project is the generic project shape. Financial data, galleries and
// content blocks are opaque JSON owned by the frontend.
type Project struct {
	ID              int64           `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Category        string          `json:"category"`
	Featured        bool            `json:"featured"`
	Priority        int             `json:"priority"`
	MainImageURL    string          `json:"main_image_url"`
	Gallery         json.RawMessage `json:"gallery"`
	InvestmentData  json.RawMessage `json:"investment_data"`
	ContentSections json.RawMessage `json:"content_sections"`
	Views           int             `json:"views"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"`
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProjectID int64     `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	Project   *Project  `json:"project,omitempty"`
}

const ProjectStatusOpen = "open"
