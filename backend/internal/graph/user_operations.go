package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// FindUserByEmail returns the user and stored hash, or nil when no user has the email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*UserCredentials, error) {
	query := `
		MATCH (u:User {email: $email})
		RETURN u.id as user_id, u.email as user_email, u.firstName as user_first_name,
		       u.lastName as user_last_name, u.password as password_hash
		LIMIT 1
	`

	records, err := r.collect(ctx, neo4j.AccessModeRead, query, map[string]any{
		"email": email,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("Error verifying user", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return &UserCredentials{
		User:         userFromRecord(records[0]),
		PasswordHash: getStringFromRecord(records[0], "password_hash"),
	}, nil
}

// CreateUser stores a new user with an already-hashed password and returns its public identity
func (r *Repository) CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (*User, error) {
	query := `
		CREATE (u:User {
			id: $id,
			email: $email,
			password: $passwordHash,
			firstName: $firstName,
			lastName: $lastName
		})
		RETURN u.id as user_id, u.email as user_email, u.firstName as user_first_name, u.lastName as user_last_name
	`

	records, err := r.collect(ctx, neo4j.AccessModeWrite, query, map[string]any{
		"id":           uuid.NewString(),
		"email":        email,
		"passwordHash": passwordHash,
		"firstName":    firstName,
		"lastName":     lastName,
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.NewStoreError("Error registering user", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewStoreError("Error registering user", errNoRecord)
	}

	user := userFromRecord(records[0])
	r.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return &user, nil
}
