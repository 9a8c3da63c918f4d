package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"post-spot/backend/internal/graph"
	"post-spot/backend/internal/utils"
)

type textRequest struct {
	TextContent string `json:"textContent"`
}

type postResponse struct {
	graph.Post
	CreatedAtDisplay string `json:"createdAtDisplay"`
}

type commentResponse struct {
	graph.Comment
	CreatedAtDisplay string `json:"createdAtDisplay"`
}

type detailedPostResponse struct {
	Post          postResponse `json:"post"`
	User          graph.User   `json:"user"`
	CommentsCount int64        `json:"commentsCount"`
	LikeCount     int64        `json:"likeCount"`
	IsLikedByUser bool         `json:"isLikedByUser"`
}

type detailedCommentResponse struct {
	Comment commentResponse `json:"comment"`
	User    graph.User      `json:"user"`
}

func newPostResponse(p graph.Post) postResponse {
	return postResponse{Post: p, CreatedAtDisplay: utils.FormatTimestamp(p.CreatedAt)}
}

func newCommentResponse(cm graph.Comment) commentResponse {
	return commentResponse{Comment: cm, CreatedAtDisplay: utils.FormatTimestamp(cm.CreatedAt)}
}

func (s *Server) handleListPosts(c *gin.Context) {
	user := currentUser(c)

	posts, err := s.content.ListPosts(c.Request.Context(), user.Email)
	if err != nil {
		s.respondError(c, "List posts", err)
		return
	}

	resp := make([]detailedPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, detailedPostResponse{
			Post:          newPostResponse(p.Post),
			User:          p.User,
			CommentsCount: p.CommentsCount,
			LikeCount:     p.LikeCount,
			IsLikedByUser: p.IsLikedByUser,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var req textRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user := currentUser(c)

	post, err := s.content.CreatePost(c.Request.Context(), user.Email, req.TextContent)
	if err != nil {
		s.respondError(c, "Create post", err)
		return
	}
	if post == nil {
		// the session outlived its account
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(*post))
}

func (s *Server) handleDeletePost(c *gin.Context) {
	user := currentUser(c)

	deleted, err := s.content.DeletePost(c.Request.Context(), c.Param("uuid"), user.Email)
	if err != nil {
		s.respondError(c, "Delete post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleListComments(c *gin.Context) {
	comments, err := s.content.ListComments(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		s.respondError(c, "List comments", err)
		return
	}

	resp := make([]detailedCommentResponse, 0, len(comments))
	for _, cm := range comments {
		resp = append(resp, detailedCommentResponse{
			Comment: newCommentResponse(cm.Comment),
			User:    cm.User,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAddComment(c *gin.Context) {
	var req textRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user := currentUser(c)

	comment, err := s.content.AddComment(c.Request.Context(), c.Param("uuid"), user.Email, req.TextContent)
	if err != nil {
		s.respondError(c, "Add comment", err)
		return
	}
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(*comment))
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	user := currentUser(c)

	deleted, err := s.content.DeleteComment(c.Request.Context(), c.Param("uuid"), user.Email)
	if err != nil {
		s.respondError(c, "Delete comment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleLike(c *gin.Context) {
	user := currentUser(c)

	if err := s.engagement.Like(c.Request.Context(), c.Param("uuid"), user.Email); err != nil {
		s.respondError(c, "Like post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

func (s *Server) handleUnlike(c *gin.Context) {
	user := currentUser(c)

	if err := s.engagement.Unlike(c.Request.Context(), c.Param("uuid"), user.Email); err != nil {
		s.respondError(c, "Unlike post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}
