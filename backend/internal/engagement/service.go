// Package engagement records likes on posts.
package engagement

import "context"

// Store is the subset of the graph repository the service needs
type Store interface {
	LikePost(ctx context.Context, postUUID, userEmail string) error
	UnlikePost(ctx context.Context, postUUID, userEmail string) error
}

// Service toggles the like edge between a user and a post
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Like is idempotent; liking twice has the effect of liking once
func (s *Service) Like(ctx context.Context, postUUID, userEmail string) error {
	return s.store.LikePost(ctx, postUUID, userEmail)
}

// Unlike removes the like if present; an absent like is not an error
func (s *Service) Unlike(ctx context.Context, postUUID, userEmail string) error {
	return s.store.UnlikePost(ctx, postUUID, userEmail)
}
