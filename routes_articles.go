package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/models"
)

const maxListLimit = 100

func setupArticleRoutes(router *gin.Engine, a *app) {
	rg := router.Group("/api/articles")

	// GET - Artikelliste mit Filtern
	rg.GET("", func(c *gin.Context) {
		log := middleware.Log(c, a.log)
		limit, err := queryInt(c, "limit", 0, maxListLimit)
		if err != nil {
			respondError(c, log, err)
			return
		}
		offset, err := queryInt(c, "offset", 0, -1)
		if err != nil {
			respondError(c, log, err)
			return
		}
		filter := models.ArticleFilter{
			Category: models.Category(c.Query("category")),
			Search:   c.Query("q"),
			Limit:    limit,
			Offset:   offset,
		}
		articles, err := a.content.ListArticles(c.Request.Context(), requestLocale(c), filter)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, articles)
	})

	rg.GET("/featured", func(c *gin.Context) {
		articles, err := a.content.Featured(c.Request.Context(), requestLocale(c))
		if err != nil {
			respondError(c, middleware.Log(c, a.log), err)
			return
		}
		c.JSON(http.StatusOK, articles)
	})

	// GET - vollständige Artikelseite als JSON
	rg.GET("/:slug", func(c *gin.Context) {
		p, err := a.content.ArticlePage(c.Request.Context(), c.Param("slug"), requestLocale(c))
		if err != nil {
			respondError(c, middleware.Log(c, a.log), err)
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

// queryInt liest einen nicht negativen Query-Parameter. ceiling < 0 heißt: keine Obergrenze.
func queryInt(c *gin.Context, name string, def, ceiling int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &errs.ValidationError{Fields: map[string]string{name: "Ungültiger Wert"}}
	}
	if ceiling >= 0 && n > ceiling {
		n = ceiling
	}
	return n, nil
}
