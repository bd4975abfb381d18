// Package model maps server DTOs to the shapes the store and views use.
package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/seed"
)

// Post is a blog post as held in the store.
type Post struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Image       string `json:"image,omitempty"`
	LessonNum   int    `json:"lesson_num"`
	Author      int    `json:"author"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
}

// HasImage reports whether the post carries an image URL.
func (p Post) HasImage() bool {
	return p.Image != ""
}

// Summary is the short text shown in result lists: the description when
// there is one, else the body.
func (p Post) Summary() string {
	if s := strings.TrimSpace(p.Description); s != "" {
		return s
	}
	return p.Text
}

// DisplayDate renders Date as "January 2, 2006". Unparsable dates are
// returned unchanged.
func (p Post) DisplayDate() string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return p.Date
}

// User is the signed-in profile.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

// Initials is the first letter of up to two words of the display name.
func (u User) Initials() string {
	var b strings.Builder
	for i, word := range strings.Fields(u.DisplayName()) {
		if i == 2 {
			break
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Mapper converts DTOs, seeding reaction counts.
type Mapper struct {
	Seeder seed.Seeder
}

// NewMapper returns a Mapper; a nil seeder seeds zero counts.
func NewMapper(s seed.Seeder) Mapper {
	if s == nil {
		s = seed.Zero{}
	}
	return Mapper{Seeder: s}
}

// Post converts a post DTO.
func (m Mapper) Post(dto api.PostDTO) Post {
	p := Post{
		ID:          dto.ID,
		Title:       dto.Title,
		Text:        dto.Text,
		Description: dto.Description,
		Date:        dto.Date,
		LessonNum:   dto.LessonNum,
		Author:      dto.Author,
	}
	if dto.Image != nil {
		p.Image = *dto.Image
	}
	if m.Seeder != nil {
		p.Likes, p.Dislikes = m.Seeder.Seed(dto.ID)
	}
	return p
}

// Posts converts a page of DTOs, preserving order.
func (m Mapper) Posts(dtos []api.PostDTO) []Post {
	out := make([]Post, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, m.Post(dto))
	}
	return out
}

// SearchResult converts a DTO for the results list, where Text carries the
// description when the post has one.
func (m Mapper) SearchResult(dto api.PostDTO) Post {
	p := m.Post(dto)
	if dto.Description != "" {
		p.Text = dto.Description
	}
	return p
}

// SearchResults converts a page of search hits, preserving order.
func (m Mapper) SearchResults(dtos []api.PostDTO) []Post {
	out := make([]Post, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, m.SearchResult(dto))
	}
	return out
}

// UserFromDTO converts a profile DTO.
func UserFromDTO(dto api.UserDTO) User {
	return User{
		ID:        dto.ID,
		Email:     dto.Email,
		Username:  dto.Username,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}
}
