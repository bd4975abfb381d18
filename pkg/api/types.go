package api

// Credentials is the body of a token create request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the new access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

// VerifyRequest asks the server whether token is still valid.
type VerifyRequest struct {
	Token string `json:"token"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse echoes the created account.
type RegisterResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	ID       int    `json:"id,omitempty"`
}

// ActivationRequest confirms an account from an emailed link.
type ActivationRequest struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// UserDTO is the profile returned by /auth/users/me/.
type UserDTO struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// PostDTO is a blog post as the server sends it.
type PostDTO struct {
	ID          int     `json:"id"`
	Image       *string `json:"image"`
	Text        string  `json:"text"`
	Date        string  `json:"date"`
	LessonNum   int     `json:"lesson_num"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Author      int     `json:"author"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []PostDTO `json:"results"`
}

// ListParams selects a page of posts. Zero values are omitted from the query.
type ListParams struct {
	Limit       int
	Offset      int
	Ordering    string
	CourseGroup int
	Search      string
}

// PostInput holds the multipart fields of a create or update request.
// Date and Author are only sent on update, and only when set.
type PostInput struct {
	Title       string
	Description string
	Text        string
	LessonNum   int
	Image       *Image
	Date        string
	Author      int
}
