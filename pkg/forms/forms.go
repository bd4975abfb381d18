// Package forms validates user input before anything is dispatched. A form
// that fails validation never reaches the store or the network.
package forms

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zfogg/blogfront/pkg/api"
)

var (
	validate      = validator.New()
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
)

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// trimmedMin checks the length of the trimmed value against the tag param.
func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
}

func positiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && n >= 1
}

func username(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func init() {
	validate.RegisterValidation("notblank", notBlank)
	validate.RegisterValidation("trimmin", trimmedMin)
	validate.RegisterValidation("positiveint", positiveInt)
	validate.RegisterValidation("username", username)
}

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// messages holds the text for each failed field/tag pair.
var messages = map[string]string{
	"title.notblank":            "Title is required",
	"description.notblank":      "Description is required",
	"description.trimmin":       "Description must be at least 10 characters",
	"text.notblank":             "Content is required",
	"text.trimmin":              "Content must be at least 20 characters",
	"lesson_num.notblank":       "Lesson number is required",
	"lesson_num.positiveint":    "Lesson number must be a positive number",
	"image.required":            "Image is required",
	"email.required":            "Email is required",
	"email.email":               "Invalid email",
	"username.required":         "Username is required",
	"username.username":         "Username may contain only letters, digits and @/./+/-/_",
	"password.required":         "Password is required",
	"password.min":              "Password must be at least 8 characters",
	"confirm_password.eqfield":  "Passwords do not match",
	"confirm_password.required": "Please confirm your password",
}

// check runs the struct rules and converts failures to Errors. Each field
// reports its first failing rule only.
func check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := Errors{}
	for _, fe := range verrs {
		field := fieldName(fe.StructField())
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out[field] = msg
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "LessonNum":
		return "lesson_num"
	case "ImagePath":
		return "image"
	case "Confirm":
		return "confirm_password"
	default:
		return strings.ToLower(structField)
	}
}

// PostForm is the create-post form as typed by the user.
type PostForm struct {
	Title       string `validate:"notblank"`
	Description string `validate:"notblank,trimmin=10"`
	Text        string `validate:"notblank,trimmin=20"`
	LessonNum   string `validate:"notblank,positiveint"`
	ImagePath   string `validate:"required"`
}

// Validate checks every field.
func (f PostForm) Validate() error {
	return check(f)
}

// Input validates the form and reads the image, returning the request to
// submit. Text fields are trimmed.
func (f PostForm) Input() (api.PostInput, error) {
	if err := f.Validate(); err != nil {
		return api.PostInput{}, err
	}
	img, err := api.ImageFromFile(f.ImagePath)
	if err != nil {
		return api.PostInput{}, Errors{"image": err.Error()}
	}
	n, _ := strconv.Atoi(strings.TrimSpace(f.LessonNum))
	return api.PostInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Text:        strings.TrimSpace(f.Text),
		LessonNum:   n,
		Image:       img,
	}, nil
}

// UpdateForm is the edit-post form. Empty fields keep their current value.
type UpdateForm struct {
	Title       string
	Description string `validate:"omitempty,trimmin=10"`
	Text        string `validate:"omitempty,trimmin=20"`
	LessonNum   string `validate:"omitempty,positiveint"`
	ImagePath   string
	Date        string
	Author      int
}

// Input validates the form and builds the partial update.
func (f UpdateForm) Input() (api.PostInput, error) {
	if err := check(f); err != nil {
		return api.PostInput{}, err
	}
	in := api.PostInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Text:        strings.TrimSpace(f.Text),
		Date:        f.Date,
		Author:      f.Author,
	}
	if f.LessonNum != "" {
		in.LessonNum, _ = strconv.Atoi(strings.TrimSpace(f.LessonNum))
	}
	if f.ImagePath != "" {
		img, err := api.ImageFromFile(f.ImagePath)
		if err != nil {
			return api.PostInput{}, Errors{"image": err.Error()}
		}
		in.Image = img
	}
	return in, nil
}

// SignUpForm is the registration form.
type SignUpForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,username"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

func (f SignUpForm) Validate() error {
	return check(f)
}

// Request validates the form and builds the registration request.
func (f SignUpForm) Request() (api.RegisterRequest, error) {
	if err := f.Validate(); err != nil {
		return api.RegisterRequest{}, err
	}
	return api.RegisterRequest{
		Email:    strings.TrimSpace(f.Email),
		Username: f.Username,
		Password: f.Password,
	}, nil
}

// SignInForm is the login form.
type SignInForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (f SignInForm) Validate() error {
	return check(f)
}
