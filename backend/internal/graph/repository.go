package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
	"post-spot/backend/pkg/logger"
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

var errNoRecord = errors.New("query returned no record")

// Repository handles all Neo4j database operations. It holds the process-wide
// driver; every method opens its own session and closes it before returning.
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithDatabase targets a named database instead of the server default
func WithDatabase(name string) Option {
	return func(r *Repository) {
		r.database = name
	}
}

// WithLogger overrides the process logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, opts ...Option) *Repository {
	r := &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Connect creates a driver and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewStoreError("Error creating Neo4j driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewStoreError(fmt.Sprintf("Error connecting to %s", uri), err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// Ping verifies the store is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewStoreError("Error verifying connectivity", err)
	}
	return nil
}

// EnsureSchema creates the uniqueness constraints and indexes the queries rely on.
// Every statement is idempotent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
		"CREATE CONSTRAINT post_uuid_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.uuid IS UNIQUE",
		"CREATE CONSTRAINT comment_uuid_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.uuid IS UNIQUE",
		"CREATE INDEX post_created_at IF NOT EXISTS FOR (p:Post) ON (p.createdAt)",
		"CREATE INDEX comment_created_at IF NOT EXISTS FOR (c:Comment) ON (c.createdAt)",
	}

	for _, stmt := range statements {
		result, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = result.Consume(ctx)
		}
		if err != nil {
			return apperrors.NewStoreError("Error applying schema", err)
		}
	}

	r.logger.Info("Graph schema ensured", zap.Int("statements", len(statements)))
	return nil
}

// Reset deletes every node and relationship. Used by the seed tool and tests.
func (r *Repository) Reset(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	if err != nil {
		return apperrors.NewStoreError("Error resetting graph", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return apperrors.NewStoreError("Error resetting graph", err)
	}

	r.logger.Warn("Graph reset", zap.Int("nodes_deleted", summary.Counters().NodesDeleted()))
	return nil
}

func (r *Repository) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// collect runs a single statement and buffers every record
func (r *Repository) collect(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := r.newSession(ctx, mode)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// exec runs a single write statement and returns its update counters
func (r *Repository) exec(ctx context.Context, query string, params map[string]any) (neo4j.Counters, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return nil, err
	}
	return summary.Counters(), nil
}

func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	return errors.As(err, &neoErr) && neoErr.Code == constraintViolationCode
}
