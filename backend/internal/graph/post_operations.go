package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
)

// ============================================================================
// Post Operations
// ============================================================================

// CreatePost creates a post authored by the user with authorEmail.
// Returns nil without error when no such user exists.
func (r *Repository) CreatePost(ctx context.Context, authorEmail, textContent string) (*Post, error) {
	query := `
		MATCH (u:User {email: $authorEmail})
		CREATE (p:Post {uuid: $uuid, textContent: $textContent, createdAt: datetime()})
		CREATE (u)-[:CREATED]->(p)
		RETURN p.uuid as uuid, p.textContent as text_content, p.createdAt as created_at
	`

	records, err := r.collect(ctx, neo4j.AccessModeWrite, query, map[string]any{
		"authorEmail": authorEmail,
		"uuid":        uuid.NewString(),
		"textContent": textContent,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("Error creating post", err)
	}
	if len(records) == 0 {
		r.logger.Debug("Post not created, author not found", zap.String("email", authorEmail))
		return nil, nil
	}

	post := postFromRecord(records[0])
	r.logger.Info("Post created",
		zap.String("post_uuid", post.UUID),
		zap.String("author", authorEmail),
	)
	return &post, nil
}

// ListPosts returns every post, newest first, with its author, comment count,
// like count and whether viewerEmail has liked it.
func (r *Repository) ListPosts(ctx context.Context, viewerEmail string) ([]DetailedPost, error) {
	query := `
		MATCH (u:User)-[:CREATED]->(p:Post)
		RETURN p.uuid as uuid, p.textContent as text_content, p.createdAt as created_at,
		       u.id as user_id, u.email as user_email, u.firstName as user_first_name, u.lastName as user_last_name,
		       size([(p)<-[:ON]-(c:Comment) | c]) as comments_count,
		       size([(p)<-[:LIKES]-(liker:User) | liker]) as like_count,
		       size([(p)<-[:LIKES]-(viewer:User {email: $viewerEmail}) | viewer]) > 0 as is_liked
		ORDER BY created_at DESC
	`

	records, err := r.collect(ctx, neo4j.AccessModeRead, query, map[string]any{
		"viewerEmail": viewerEmail,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("Error fetching posts", err)
	}

	posts := make([]DetailedPost, 0, len(records))
	for _, record := range records {
		posts = append(posts, DetailedPost{
			Post:          postFromRecord(record),
			User:          userFromRecord(record),
			CommentsCount: getInt64FromRecord(record, "comments_count"),
			LikeCount:     getInt64FromRecord(record, "like_count"),
			IsLikedByUser: getBoolFromRecord(record, "is_liked"),
		})
	}
	return posts, nil
}

// DeletePost deletes a post and every comment on it, but only when requesterEmail
// authored the post. Reports whether anything was deleted; a missing post and a
// non-owner look the same.
func (r *Repository) DeletePost(ctx context.Context, postUUID, requesterEmail string) (bool, error) {
	query := `
		MATCH (u:User {email: $requesterEmail})-[:CREATED]->(p:Post {uuid: $postUuid})
		OPTIONAL MATCH (p)<-[:ON]-(c:Comment)
		DETACH DELETE p, c
	`

	counters, err := r.exec(ctx, query, map[string]any{
		"postUuid":       postUUID,
		"requesterEmail": requesterEmail,
	})
	if err != nil {
		return false, apperrors.NewStoreError("Error deleting post and comments", err)
	}

	deleted := counters.NodesDeleted() > 0
	if deleted {
		r.logger.Info("Post deleted",
			zap.String("post_uuid", postUUID),
			zap.Int("nodes_deleted", counters.NodesDeleted()),
		)
	}
	return deleted, nil
}
