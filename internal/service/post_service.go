package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PostService handles post CRUD. Authorization is the caller's job: handlers
// run the admin guard before invoking any mutating method here.
type PostService struct {
	postRepo repository.PostRepository
}

// PostInput carries the post form fields shared by create and edit.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost stamps the publication time and stores the post with the acting
// admin as author.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Body:        in.Body,
		ImageURL:    in.ImageURL,
		UserID:      authorID,
		PublishedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost mutates title, subtitle, image URL and body in place. Author and
// publication date are fixed at creation and never rewritten here.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.ImageURL = in.ImageURL
	post.Body = in.Body

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

func validatePostInput(in PostInput) error {
	if in.Title == "" || in.Subtitle == "" || in.Body == "" || in.ImageURL == "" {
		return models.NewValidationError("Title, subtitle, body, and image URL are required")
	}
	return nil
}
