package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/services"
)

func setupCommentRoutes(router *gin.Engine, a *app) {
	rg := router.Group("/api/comments")

	// GET - freigegebene Kommentare eines Artikels
	rg.GET("", func(c *gin.Context) {
		log := middleware.Log(c, a.log)
		comments, err := a.comments.List(c.Request.Context(), c.Query("slug"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	})

	// POST - neuen Kommentar zur Moderation einreichen
	rg.POST("", middleware.RateLimit(a.limiter), func(c *gin.Context) {
		log := middleware.Log(c, a.log)
		var in services.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			log.Warn("Invalid request body for comment", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		in.IP = middleware.ClientIP(c)

		id, err := a.comments.Submit(c.Request.Context(), in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": services.SubmittedMessage, "id": id})
	})
}
