package graph

import "time"

// User is the public identity of an account. The password hash never leaves
// the store boundary through this type.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserCredentials pairs a user with the stored bcrypt hash. Only the identity
// service reads it.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Post is a short text post
type Post struct {
	UUID        string    `json:"uuid"`
	TextContent string    `json:"textContent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment is a reply attached to a post
type Comment struct {
	UUID        string    `json:"uuid"`
	TextContent string    `json:"textContent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DetailedPost is a post joined with its author and engagement aggregates,
// computed at read time for a particular viewer.
type DetailedPost struct {
	Post          Post  `json:"post"`
	User          User  `json:"user"`
	CommentsCount int64 `json:"commentsCount"`
	LikeCount     int64 `json:"likeCount"`
	IsLikedByUser bool  `json:"isLikedByUser"`
}

// DetailedComment is a comment joined with its author
type DetailedComment struct {
	Comment Comment `json:"comment"`
	User    User    `json:"user"`
}
