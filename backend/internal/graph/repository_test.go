package graph

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	apperrors "post-spot/backend/pkg/errors"
)

const testPassword = "letmein-please"

// testDriver is nil when the tests run with -short or Docker is unavailable
var testDriver neo4j.DriverWithContext

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcneo4j.Run(ctx, "neo4j:5", tcneo4j.WithAdminPassword(testPassword))
	if err != nil {
		fmt.Fprintf(os.Stderr, "neo4j container unavailable, skipping integration tests: %v\n", err)
		os.Exit(m.Run())
	}

	uri, err := container.BoltUrl(ctx)
	if err == nil {
		testDriver, err = Connect(ctx, uri, "neo4j", testPassword)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "neo4j container not reachable, skipping integration tests: %v\n", err)
		testDriver = nil
	}

	code := m.Run()

	if testDriver != nil {
		_ = testDriver.Close(ctx)
	}
	if err := testcontainers.TerminateContainer(container); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate neo4j container: %v\n", err)
	}
	os.Exit(code)
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	if testDriver == nil {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	repo := NewRepository(testDriver)
	require.NoError(t, repo.Reset(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func mustCreateUser(t *testing.T, repo *Repository, email string) *User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, "hash-"+email, "First", "Last")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func findPost(posts []DetailedPost, uuid string) *DetailedPost {
	for i := range posts {
		if posts[i].Post.UUID == uuid {
			return &posts[i]
		}
	}
	return nil
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "a@example.com")
	assert.NotEmpty(t, user.ID)

	_, err := repo.CreateUser(ctx, "a@example.com", "other", "Other", "User")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestRepository_FindUserByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := mustCreateUser(t, repo, "find@example.com")

	creds, err := repo.FindUserByEmail(ctx, "find@example.com")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, *created, creds.User)
	assert.Equal(t, "hash-find@example.com", creds.PasswordHash)

	missing, err := repo.FindUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_CreatePost_Listed(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	author := mustCreateUser(t, repo, "author@example.com")
	before := time.Now().Add(-time.Minute)

	post, err := repo.CreatePost(ctx, author.Email, "hello graph")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.NotEmpty(t, post.UUID)
	assert.True(t, post.CreatedAt.After(before))
	assert.Equal(t, time.UTC, post.CreatedAt.Location())

	for _, viewer := range []string{author.Email, "stranger@example.com"} {
		posts, err := repo.ListPosts(ctx, viewer)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		got := posts[0]
		assert.Equal(t, "hello graph", got.Post.TextContent)
		assert.Equal(t, *author, got.User)
		assert.Zero(t, got.CommentsCount)
		assert.Zero(t, got.LikeCount)
		assert.False(t, got.IsLikedByUser)
	}
}

func TestRepository_CreatePost_UnknownAuthor(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, "ghost@example.com", "nobody wrote this")
	require.NoError(t, err)
	assert.Nil(t, post)

	posts, err := repo.ListPosts(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRepository_ListPosts_NewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	author := mustCreateUser(t, repo, "order@example.com")
	var uuids []string
	for _, text := range []string{"first", "second", "third"} {
		post, err := repo.CreatePost(ctx, author.Email, text)
		require.NoError(t, err)
		uuids = append(uuids, post.UUID)
		time.Sleep(5 * time.Millisecond)
	}

	posts, err := repo.ListPosts(ctx, author.Email)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, uuids[2], posts[0].Post.UUID)
	assert.Equal(t, uuids[1], posts[1].Post.UUID)
	assert.Equal(t, uuids[0], posts[2].Post.UUID)
}

func TestRepository_LikeIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "liker@example.com")
	post, err := repo.CreatePost(ctx, user.Email, "like me")
	require.NoError(t, err)

	require.NoError(t, repo.LikePost(ctx, post.UUID, user.Email))
	require.NoError(t, repo.LikePost(ctx, post.UUID, user.Email))

	posts, err := repo.ListPosts(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, int64(1), posts[0].LikeCount)
	assert.True(t, posts[0].IsLikedByUser)

	require.NoError(t, repo.UnlikePost(ctx, post.UUID, user.Email))
	require.NoError(t, repo.UnlikePost(ctx, post.UUID, user.Email))

	posts, err = repo.ListPosts(ctx, user.Email)
	require.NoError(t, err)
	assert.Zero(t, posts[0].LikeCount)
	assert.False(t, posts[0].IsLikedByUser)
}

func TestRepository_DeletePost_CascadesComments(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	author := mustCreateUser(t, repo, "owner@example.com")
	other := mustCreateUser(t, repo, "other@example.com")

	doomed, err := repo.CreatePost(ctx, author.Email, "to be deleted")
	require.NoError(t, err)
	kept, err := repo.CreatePost(ctx, author.Email, "to be kept")
	require.NoError(t, err)

	comment, err := repo.AddComment(ctx, doomed.UUID, other.Email, "first!")
	require.NoError(t, err)
	require.NotNil(t, comment)

	deleted, err := repo.DeletePost(ctx, doomed.UUID, author.Email)
	require.NoError(t, err)
	assert.True(t, deleted)

	posts, err := repo.ListPosts(ctx, author.Email)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.UUID, posts[0].Post.UUID)

	comments, err := repo.ListComments(ctx, doomed.UUID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// the comment node itself must be gone, not just detached from the post
	removed, err := repo.DeleteComment(ctx, comment.UUID, other.Email)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_DeletePost_NonOwnerIsNoOp(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	author := mustCreateUser(t, repo, "owner@example.com")
	intruder := mustCreateUser(t, repo, "intruder@example.com")

	post, err := repo.CreatePost(ctx, author.Email, "mine")
	require.NoError(t, err)

	deleted, err := repo.DeletePost(ctx, post.UUID, intruder.Email)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeletePost(ctx, "no-such-post", author.Email)
	require.NoError(t, err)
	assert.False(t, deleted)

	posts, err := repo.ListPosts(ctx, author.Email)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.UUID, posts[0].Post.UUID)
}

func TestRepository_DeleteComment_LeavesPostAndSiblings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	author := mustCreateUser(t, repo, "author@example.com")
	commenter := mustCreateUser(t, repo, "commenter@example.com")

	post, err := repo.CreatePost(ctx, author.Email, "discuss")
	require.NoError(t, err)
	first, err := repo.AddComment(ctx, post.UUID, commenter.Email, "one")
	require.NoError(t, err)
	second, err := repo.AddComment(ctx, post.UUID, commenter.Email, "two")
	require.NoError(t, err)

	// only the comment's author may delete it
	deleted, err := repo.DeleteComment(ctx, first.UUID, author.Email)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteComment(ctx, first.UUID, commenter.Email)
	require.NoError(t, err)
	assert.True(t, deleted)

	comments, err := repo.ListComments(ctx, post.UUID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, second.UUID, comments[0].Comment.UUID)
	assert.Equal(t, *commenter, comments[0].User)

	posts, err := repo.ListPosts(ctx, author.Email)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].CommentsCount)
}

func TestRepository_AddComment_MissingEndpoint(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "lonely@example.com")
	post, err := repo.CreatePost(ctx, user.Email, "anyone?")
	require.NoError(t, err)

	comment, err := repo.AddComment(ctx, "no-such-post", user.Email, "hello")
	require.NoError(t, err)
	assert.Nil(t, comment)

	comment, err = repo.AddComment(ctx, post.UUID, "ghost@example.com", "boo")
	require.NoError(t, err)
	assert.Nil(t, comment)
}

func TestRepository_EndToEnd(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	a := mustCreateUser(t, repo, "a@example.com")
	b := mustCreateUser(t, repo, "b@example.com")

	post, err := repo.CreatePost(ctx, a.Email, "A's thoughts")
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, post.UUID, b.Email, "nice one")
	require.NoError(t, err)
	require.NoError(t, repo.LikePost(ctx, post.UUID, b.Email))

	asA, err := repo.ListPosts(ctx, a.Email)
	require.NoError(t, err)
	got := findPost(asA, post.UUID)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.False(t, got.IsLikedByUser)

	asB, err := repo.ListPosts(ctx, b.Email)
	require.NoError(t, err)
	got = findPost(asB, post.UUID)
	require.NotNil(t, got)
	assert.True(t, got.IsLikedByUser)
}
