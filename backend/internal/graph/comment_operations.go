package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
)

// ============================================================================
// Comment Operations
// ============================================================================

// ListComments returns the comments on a post, newest first, joined with their authors
func (r *Repository) ListComments(ctx context.Context, postUUID string) ([]DetailedComment, error) {
	query := `
		MATCH (p:Post {uuid: $postUuid})<-[:ON]-(c:Comment)<-[:WROTE]-(u:User)
		RETURN c.uuid as uuid, c.textContent as text_content, c.createdAt as created_at,
		       u.id as user_id, u.email as user_email, u.firstName as user_first_name, u.lastName as user_last_name
		ORDER BY created_at DESC
	`

	records, err := r.collect(ctx, neo4j.AccessModeRead, query, map[string]any{
		"postUuid": postUUID,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("Error fetching comments", err)
	}

	comments := make([]DetailedComment, 0, len(records))
	for _, record := range records {
		comments = append(comments, DetailedComment{
			Comment: commentFromRecord(record),
			User:    userFromRecord(record),
		})
	}
	return comments, nil
}

// AddComment attaches a new comment by authorEmail to a post.
// Returns nil without error when either the post or the user is missing.
func (r *Repository) AddComment(ctx context.Context, postUUID, authorEmail, textContent string) (*Comment, error) {
	query := `
		MATCH (p:Post {uuid: $postUuid}), (u:User {email: $authorEmail})
		CREATE (c:Comment {uuid: $uuid, textContent: $textContent, createdAt: datetime()})
		CREATE (u)-[:WROTE]->(c)-[:ON]->(p)
		RETURN c.uuid as uuid, c.textContent as text_content, c.createdAt as created_at
	`

	records, err := r.collect(ctx, neo4j.AccessModeWrite, query, map[string]any{
		"postUuid":    postUUID,
		"authorEmail": authorEmail,
		"uuid":        uuid.NewString(),
		"textContent": textContent,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("Error adding comment", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	comment := commentFromRecord(records[0])
	r.logger.Info("Comment added",
		zap.String("comment_uuid", comment.UUID),
		zap.String("post_uuid", postUUID),
	)
	return &comment, nil
}

// DeleteComment deletes a comment only when requesterEmail wrote it.
// The post it belongs to is untouched.
func (r *Repository) DeleteComment(ctx context.Context, commentUUID, requesterEmail string) (bool, error) {
	query := `
		MATCH (:User {email: $requesterEmail})-[:WROTE]->(c:Comment {uuid: $commentUuid})
		DETACH DELETE c
	`

	counters, err := r.exec(ctx, query, map[string]any{
		"commentUuid":    commentUUID,
		"requesterEmail": requesterEmail,
	})
	if err != nil {
		return false, apperrors.NewStoreError("Error deleting comment", err)
	}
	return counters.NodesDeleted() > 0, nil
}
