package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/providers/googleindex"
)

type urlsRequest struct {
	URLs   []string `json:"urls"`
	Action string   `json:"action"`
}

type slugRef struct {
	Current string `json:"current"`
}

// webhookPayload deckt beide Formen ab, die das CMS schickt.
type webhookPayload struct {
	Document *struct {
		Slug slugRef `json:"slug"`
	} `json:"document"`
	Slug slugRef `json:"slug"`
}

func (p webhookPayload) slug() string {
	if p.Document != nil && p.Document.Slug.Current != "" {
		return p.Document.Slug.Current
	}
	return p.Slug.Current
}

const sitemapTimeout = 2 * time.Minute

func setupIndexingRoutes(router *gin.Engine, a *app) {
	rg := router.Group("/api")
	rg.Use(middleware.BearerAuth(a.cfg.CronSecret))

	submit := func(kind string) gin.HandlerFunc {
		return func(c *gin.Context) {
			log := middleware.Log(c, a.log).With(zap.String("kind", kind))
			if !a.indexing.Enabled(kind) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": kind + " is not configured"})
				return
			}
			var req urlsRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
			if kind == "google" && req.Action != "" && !googleindex.ValidAction(req.Action) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported action", "fields": gin.H{"action": req.Action}})
				return
			}
			if kind != "google" {
				req.Action = ""
			}
			report, err := a.indexing.Submit(c.Request.Context(), req.URLs, req.Action, kind)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(reportStatus(report.Success), report)
		}
	}
	rg.POST("/indexnow", submit("indexnow"))
	rg.POST("/google-indexing", submit("google"))

	// CMS-Webhook nach Veröffentlichung
	rg.POST("/index-article", func(c *gin.Context) {
		log := middleware.Log(c, a.log)
		var payload webhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		report, err := a.indexing.NotifyPublished(c.Request.Context(), payload.slug())
		if err != nil {
			respondError(c, log, err)
			return
		}
		log.Info("Article indexing relayed", zap.String("slug", payload.slug()), zap.Bool("success", report.Success))
		c.JSON(reportStatus(report.Success), report)
	})

	sitemap := func(trigger string) gin.HandlerFunc {
		return func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), sitemapTimeout)
			defer cancel()
			report := a.sitemaps.Submit(ctx, trigger)
			c.JSON(reportStatus(report.Success), report)
		}
	}
	rg.POST("/submit-sitemap", sitemap("manual"))
	rg.GET("/cron/submit-sitemap", sitemap("cron"))

	rg.GET("/indexing/history", func(c *gin.Context) {
		log := middleware.Log(c, a.log)
		limit, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("limit", "50")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		rows, err := a.indexing.RecentSubmissions(c.Request.Context(), limit)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	})
}

// reportStatus: 200, wenn mindestens ein Endpunkt angenommen hat, sonst 502.
func reportStatus(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusBadGateway
}
