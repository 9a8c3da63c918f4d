package graph

import (
	"context"

	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
)

// LikePost records that userEmail likes a post. MERGE keeps at most one edge
// per pair, so repeating the call changes nothing.
func (r *Repository) LikePost(ctx context.Context, postUUID, userEmail string) error {
	query := `
		MATCH (p:Post {uuid: $postUuid}), (u:User {email: $userEmail})
		MERGE (u)-[:LIKES]->(p)
	`

	counters, err := r.exec(ctx, query, map[string]any{
		"postUuid":  postUUID,
		"userEmail": userEmail,
	})
	if err != nil {
		return apperrors.NewStoreError("Error liking post", err)
	}

	if counters.RelationshipsCreated() > 0 {
		r.logger.Debug("Post liked",
			zap.String("post_uuid", postUUID),
			zap.String("email", userEmail),
		)
	}
	return nil
}

// UnlikePost removes the like edge if present
func (r *Repository) UnlikePost(ctx context.Context, postUUID, userEmail string) error {
	query := `
		MATCH (u:User {email: $userEmail})-[l:LIKES]->(p:Post {uuid: $postUuid})
		DELETE l
	`

	if _, err := r.exec(ctx, query, map[string]any{
		"postUuid":  postUUID,
		"userEmail": userEmail,
	}); err != nil {
		return apperrors.NewStoreError("Error unliking post", err)
	}
	return nil
}
