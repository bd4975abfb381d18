package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/zfogg/blogfront/pkg/logger"
)

// Image is a file attached to a post submission.
type Image struct {
	Name   string
	Reader io.Reader
}

// ImageFromFile reads the image at path into memory.
func ImageFromFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &Image{Name: filepath.Base(path), Reader: bytes.NewReader(data)}, nil
}

// ListPosts fetches one page of the post listing.
func (a *Client) ListPosts(ctx context.Context, params ListParams) (*PostPage, error) {
	logger.Debug("Listing posts", "limit", params.Limit, "offset", params.Offset, "search", params.Search)

	req := a.c.R(ctx)
	if params.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(params.Limit))
		req.SetQueryParam("offset", strconv.Itoa(params.Offset))
	}
	if params.Ordering != "" {
		req.SetQueryParam("ordering", params.Ordering)
	}
	if params.CourseGroup != 0 {
		req.SetQueryParam("author__course_group", strconv.Itoa(params.CourseGroup))
	}
	if params.Search != "" {
		req.SetQueryParam("search", params.Search)
	}

	resp, err := req.Get("/blog/posts/")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var page PostPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []PostDTO{}
	}
	return &page, nil
}

// GetPost fetches a single post.
func (a *Client) GetPost(ctx context.Context, id int) (*PostDTO, error) {
	logger.Debug("Fetching post", "post_id", id)

	resp, err := a.c.R(ctx).Get(fmt.Sprintf("/blog/posts/%d/", id))
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post PostDTO
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost submits a new post as a multipart form.
func (a *Client) CreatePost(ctx context.Context, in PostInput) (*PostDTO, error) {
	logger.Debug("Creating post", "title", in.Title)
	return a.submitPost(ctx, "POST", "/blog/posts/", in, false)
}

// UpdatePost sends the non-empty fields of in for post id.
func (a *Client) UpdatePost(ctx context.Context, id int, in PostInput) (*PostDTO, error) {
	logger.Debug("Updating post", "post_id", id)
	return a.submitPost(ctx, "PUT", fmt.Sprintf("/blog/posts/%d/", id), in, true)
}

// submitPost sends in as a multipart form. A partial submission omits empty
// fields so the server keeps their current values.
func (a *Client) submitPost(ctx context.Context, method, path string, in PostInput, partial bool) (*PostDTO, error) {
	fields := map[string]string{}
	set := func(key, value string) {
		if value != "" || !partial {
			fields[key] = value
		}
	}
	set("title", in.Title)
	set("description", in.Description)
	set("text", in.Text)
	if in.LessonNum > 0 || !partial {
		fields["lesson_num"] = strconv.Itoa(in.LessonNum)
	}
	if in.Date != "" {
		fields["date"] = in.Date
	}
	if in.Author != 0 {
		fields["author"] = strconv.Itoa(in.Author)
	}

	req := a.c.R(ctx).SetMultipartFormData(fields)
	if in.Image != nil && in.Image.Reader != nil {
		req.SetFileReader("image", in.Image.Name, in.Image.Reader)
	}

	resp, err := req.Execute(method, path)
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post PostDTO
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by ID
func (a *Client) DeletePost(ctx context.Context, id int) error {
	logger.Debug("Deleting post", "post_id", id)

	resp, err := a.c.R(ctx).Delete(fmt.Sprintf("/blog/posts/%d/", id))
	return CheckResponse(resp, err)
}
