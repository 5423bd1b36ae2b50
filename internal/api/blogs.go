package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// BlogService provides access to blog post endpoints.
type BlogService struct {
	client *Client
}

// Blogs returns the blog post service.
func (c *Client) Blogs() *BlogService {
	return &BlogService{client: c}
}

// List fetches a page of blog posts.
func (s *BlogService) List(ctx context.Context, opts ListOptions) (Page[models.BlogPost], error) {
	resp, err := s.client.Get(ctx, "/blog-posts"+opts.encode())
	if err != nil {
		return Page[models.BlogPost]{}, err
	}
	return decodePage[models.BlogPost](resp)
}

// Get fetches one blog post with full content. The blog detail endpoint
// nests the record under details.message.blog_post.
func (s *BlogService) Get(ctx context.Context, id int64) (models.BlogPost, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/blog-posts/%d", id))
	if err != nil {
		return models.BlogPost{}, err
	}
	return decodeNestedDetail[models.BlogPost](resp, "blog_post")
}

// CreateBlogPostRequest is the payload for generating a new blog post.
type CreateBlogPostRequest struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
}

// Create requests generation of a new blog post.
func (s *BlogService) Create(ctx context.Context, req *CreateBlogPostRequest) error {
	resp, err := s.client.Post(ctx, "/blog-posts", req)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces a blog post with the given record.
func (s *BlogService) Update(ctx context.Context, id int64, post models.BlogPost) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/blog-posts/%d", id), post)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes a blog post.
func (s *BlogService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/blog-posts/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Publish transitions a blog post from draft to published.
func (s *BlogService) Publish(ctx context.Context, id int64) error {
	resp, err := s.client.Post(ctx, fmt.Sprintf("/blog-posts/%d/publish", id), nil)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
