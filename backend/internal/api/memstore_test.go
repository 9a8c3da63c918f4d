package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"post-spot/backend/internal/graph"
	apperrors "post-spot/backend/pkg/errors"
)

// memoryStore is an in-process stand-in for the graph repository with the
// same matching semantics: missing endpoints and non-owners match nothing.
type memoryStore struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	users    map[string]graph.UserCredentials
	posts    map[string]memPost
	comments map[string]memComment
	likes    map[[2]string]struct{}
}

type memPost struct {
	post   graph.Post
	author string
}

type memComment struct {
	comment graph.Comment
	author  string
	post    string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock:    time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		users:    map[string]graph.UserCredentials{},
		posts:    map[string]memPost{},
		comments: map[string]memComment{},
		likes:    map[[2]string]struct{}{},
	}
}

func (m *memoryStore) next(prefix string) (string, time.Time) {
	m.seq++
	m.clock = m.clock.Add(time.Second)
	return fmt.Sprintf("%s-%d", prefix, m.seq), m.clock
}

func (m *memoryStore) FindUserByEmail(_ context.Context, email string) (*graph.UserCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	creds, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &creds, nil
}

func (m *memoryStore) CreateUser(_ context.Context, email, passwordHash, firstName, lastName string) (*graph.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return nil, apperrors.ErrDuplicateEmail
	}
	id, _ := m.next("user")
	user := graph.User{ID: id, Email: email, FirstName: firstName, LastName: lastName}
	m.users[email] = graph.UserCredentials{User: user, PasswordHash: passwordHash}
	return &user, nil
}

func (m *memoryStore) CreatePost(_ context.Context, authorEmail, textContent string) (*graph.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[authorEmail]; !ok {
		return nil, nil
	}
	id, at := m.next("post")
	post := graph.Post{UUID: id, TextContent: textContent, CreatedAt: at}
	m.posts[id] = memPost{post: post, author: authorEmail}
	return &post, nil
}

func (m *memoryStore) ListPosts(_ context.Context, viewerEmail string) ([]graph.DetailedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]graph.DetailedPost, 0, len(m.posts))
	for id, p := range m.posts {
		dp := graph.DetailedPost{Post: p.post, User: m.users[p.author].User}
		for _, c := range m.comments {
			if c.post == id {
				dp.CommentsCount++
			}
		}
		for key := range m.likes {
			if key[0] == id {
				dp.LikeCount++
				if key[1] == viewerEmail {
					dp.IsLikedByUser = true
				}
			}
		}
		out = append(out, dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Post.CreatedAt.After(out[j].Post.CreatedAt) })
	return out, nil
}

func (m *memoryStore) DeletePost(_ context.Context, postUUID, requesterEmail string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postUUID]
	if !ok || p.author != requesterEmail {
		return false, nil
	}
	delete(m.posts, postUUID)
	for id, c := range m.comments {
		if c.post == postUUID {
			delete(m.comments, id)
		}
	}
	for key := range m.likes {
		if key[0] == postUUID {
			delete(m.likes, key)
		}
	}
	return true, nil
}

func (m *memoryStore) ListComments(_ context.Context, postUUID string) ([]graph.DetailedComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []graph.DetailedComment{}
	for _, c := range m.comments {
		if c.post == postUUID {
			out = append(out, graph.DetailedComment{Comment: c.comment, User: m.users[c.author].User})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Comment.CreatedAt.After(out[j].Comment.CreatedAt) })
	return out, nil
}

func (m *memoryStore) AddComment(_ context.Context, postUUID, authorEmail, textContent string) (*graph.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postUUID]; !ok {
		return nil, nil
	}
	if _, ok := m.users[authorEmail]; !ok {
		return nil, nil
	}
	id, at := m.next("comment")
	comment := graph.Comment{UUID: id, TextContent: textContent, CreatedAt: at}
	m.comments[id] = memComment{comment: comment, author: authorEmail, post: postUUID}
	return &comment, nil
}

func (m *memoryStore) DeleteComment(_ context.Context, commentUUID, requesterEmail string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[commentUUID]
	if !ok || c.author != requesterEmail {
		return false, nil
	}
	delete(m.comments, commentUUID)
	return true, nil
}

func (m *memoryStore) LikePost(_ context.Context, postUUID, userEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postUUID]; !ok {
		return nil
	}
	if _, ok := m.users[userEmail]; !ok {
		return nil
	}
	m.likes[[2]string{postUUID, userEmail}] = struct{}{}
	return nil
}

func (m *memoryStore) UnlikePost(_ context.Context, postUUID, userEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.likes, [2]string{postUUID, userEmail})
	return nil
}
