package api

import (
	"encoding/json"

	"github.com/boostaproject/bap-api/app/auth"
	"github.com/boostaproject/bap-api/app/database"
)

type Handler struct {
	articles  database.ArticleRepository
	projects  database.ProjectRepository
	users     database.UserRepository
	favorites database.FavoriteRepository
	tokens    *auth.Tokens
	version   string
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=80"`
	LastName string `json:"last_name" binding:"max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	AccessToken string         `json:"access_token"`
	User        *database.User `json:"user"`
}

type createProjectRequest struct {
	Slug            string          `json:"slug" binding:"required,min=3,max=150"`
	Title           string          `json:"title" binding:"required,min=3,max=200"`
	Subtitle        string          `json:"subtitle"`
	Description     string          `json:"description"`
	Status          string          `json:"status" binding:"omitempty,oneof=open active funded closed"`
	Category        string          `json:"category"`
	Featured        bool            `json:"featured"`
	Priority        int             `json:"priority"`
	MainImageURL    string          `json:"main_image_url"`
	Gallery         json.RawMessage `json:"gallery"`
	InvestmentData  json.RawMessage `json:"investment_data"`
	ContentSections json.RawMessage `json:"content_sections"`
}

// updateProjectRequest carries only the keys the client sent. A nil
// pointer or empty RawMessage means "leave unchanged".
type updateProjectRequest struct {
	Title           *string         `json:"title" binding:"omitempty,min=3,max=200"`
	Subtitle        *string         `json:"subtitle"`
	Description     *string         `json:"description"`
	Status          *string         `json:"status" binding:"omitempty,oneof=open active funded closed"`
	Category        *string         `json:"category"`
	Featured        *bool           `json:"featured"`
	Priority        *int            `json:"priority"`
	MainImageURL    *string         `json:"main_image_url"`
	Gallery         json.RawMessage `json:"gallery"`
	InvestmentData  json.RawMessage `json:"investment_data"`
	ContentSections json.RawMessage `json:"content_sections"`
}

type createArticleRequest struct {
	Slug            string   `json:"slug" binding:"required,min=3,max=150"`
	Title           string   `json:"title" binding:"required,min=3,max=200"`
	Author          string   `json:"author"`
	Date            string   `json:"date"`
	Excerpt         string   `json:"excerpt"`
	Image           string   `json:"image"`
	ImageAlt        *string  `json:"image_alt"`
	Content         string   `json:"content" binding:"required"`
	Related         []string `json:"related"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    string   `json:"meta_keywords"`
}

type updateArticleRequest struct {
	Title           *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Author          *string   `json:"author"`
	Date            *string   `json:"date"`
	Excerpt         *string   `json:"excerpt"`
	Image           *string   `json:"image"`
	ImageAlt        *string   `json:"image_alt"`
	Content         *string   `json:"content"`
	Related         *[]string `json:"related"`
	MetaDescription *string   `json:"meta_description"`
	MetaKeywords    *string   `json:"meta_keywords"`
}

type favoriteRequest struct {
	ProjectID int64 `json:"project_id" binding:"required,min=1"`
}
