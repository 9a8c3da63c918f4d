// Package content creates, lists and deletes posts and comments.
package content

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"post-spot/backend/internal/graph"
	apperrors "post-spot/backend/pkg/errors"
	"post-spot/backend/pkg/logger"
)

// Store is the subset of the graph repository the service needs
type Store interface {
	CreatePost(ctx context.Context, authorEmail, textContent string) (*graph.Post, error)
	ListPosts(ctx context.Context, viewerEmail string) ([]graph.DetailedPost, error)
	DeletePost(ctx context.Context, postUUID, requesterEmail string) (bool, error)
	ListComments(ctx context.Context, postUUID string) ([]graph.DetailedComment, error)
	AddComment(ctx context.Context, postUUID, authorEmail, textContent string) (*graph.Comment, error)
	DeleteComment(ctx context.Context, commentUUID, requesterEmail string) (bool, error)
}

// Service wraps post and comment operations
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a content service backed by store
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("content"),
	}
}

// CreatePost publishes text as a new post by authorEmail.
// Returns nil without error when the author does not exist.
func (s *Service) CreatePost(ctx context.Context, authorEmail, text string) (*graph.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrContentRequired
	}
	return s.store.CreatePost(ctx, authorEmail, text)
}

// ListPosts returns all posts newest first, annotated for viewerEmail
func (s *Service) ListPosts(ctx context.Context, viewerEmail string) ([]graph.DetailedPost, error) {
	return s.store.ListPosts(ctx, viewerEmail)
}

// ListComments returns a post's comments newest first
func (s *Service) ListComments(ctx context.Context, postUUID string) ([]graph.DetailedComment, error) {
	return s.store.ListComments(ctx, postUUID)
}

// AddComment adds a comment by authorEmail to a post.
// Returns nil without error when the post or the author does not exist.
func (s *Service) AddComment(ctx context.Context, postUUID, authorEmail, text string) (*graph.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrContentRequired
	}
	return s.store.AddComment(ctx, postUUID, authorEmail, text)
}

// DeletePost removes a post and its comments when requesterEmail authored it.
// A non-owner or unknown post is a silent no-op reported as false.
func (s *Service) DeletePost(ctx context.Context, postUUID, requesterEmail string) (bool, error) {
	deleted, err := s.store.DeletePost(ctx, postUUID, requesterEmail)
	if err != nil {
		return false, err
	}
	if !deleted {
		s.logger.Debug("Post delete matched nothing",
			zap.String("post_uuid", postUUID),
			zap.String("requester", requesterEmail),
		)
	}
	return deleted, nil
}

// DeleteComment removes a comment when requesterEmail wrote it
func (s *Service) DeleteComment(ctx context.Context, commentUUID, requesterEmail string) (bool, error) {
	deleted, err := s.store.DeleteComment(ctx, commentUUID, requesterEmail)
	if err != nil {
		return false, err
	}
	if !deleted {
		s.logger.Debug("Comment delete matched nothing",
			zap.String("comment_uuid", commentUUID),
			zap.String("requester", requesterEmail),
		)
	}
	return deleted, nil
}
