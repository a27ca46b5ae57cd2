package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"carbonboard/models"
	"carbonboard/utils"
)

type postRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title" binding:"required"`
	DateTime string `json:"dateTime" binding:"required"`
	Content  string `json:"content"`
}

// PostsHandler loads the notes of the company in the path and records it as
// the selected company.
func (h *DashboardHandler) PostsHandler(c *gin.Context) {
	companyID := c.Param("id")

	posts, err := h.state.SelectCompany(companyID)
	if err != nil {
		log.Errorf("loading posts for %s: %v", companyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load posts")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "companyId": companyID})
}

// SavePostHandler writes a note optimistically. The in-memory list gets the
// entry immediately; if the store rejects the save the list is rolled back
// and the failure reported as a bad gateway with a readable message.
func (h *DashboardHandler) SavePostHandler(c *gin.Context) {
	companyID := c.Param("id")

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ToMessage(err, "Invalid post payload")})
		return
	}

	post := models.Post{
		ID:          req.ID,
		Title:       req.Title,
		ResourceUID: companyID,
		DateTime:    req.DateTime,
		Content:     req.Content,
	}

	saved, err := h.state.AddOrUpdatePost(post)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": utils.ToMessage(err, "Save failed"),
			"posts": h.state.Posts(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": saved, "posts": h.state.Posts()})
}
