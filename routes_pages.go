package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/feed"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/page"
)

var notFoundText = map[locale.Locale]string{
	locale.DE: "Artikel nicht gefunden",
	locale.EN: "Article not found",
	locale.TR: "Makale bulunamadı",
}

func setupFeedRoutes(router *gin.Engine, a *app) {
	router.GET("/feed.xml", func(c *gin.Context) {
		var buf bytes.Buffer
		if err := a.content.WriteRSS(c.Request.Context(), &buf); err != nil {
			respondError(c, middleware.Log(c, a.log), err)
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
	})

	router.GET("/sitemap.xml", func(c *gin.Context) {
		var buf bytes.Buffer
		if err := feed.WriteSitemap(&buf, a.content.Sitemap(c.Request.Context())); err != nil {
			respondError(c, middleware.Log(c, a.log), err)
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
	})

	router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, feed.Robots(a.site.BaseURL))
	})

	// IndexNow verlangt den Schlüssel unter /{key}.txt
	if key := a.cfg.IndexNowAPIKey; key != "" {
		router.GET("/"+key+".txt", func(c *gin.Context) {
			c.String(http.StatusOK, key)
		})
	}
}

// setupPageRoutes registriert die HTML-Seiten je Sprache als eigene Gruppe.
func setupPageRoutes(router *gin.Engine, a *app) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+string(locale.Default))
	})

	for _, l := range locale.Supported {
		l := l
		rg := router.Group("/" + string(l))

		rg.GET("", func(c *gin.Context) {
			p := page.HomePage(a.site, l)
			renderHTML(c, http.StatusOK, page.StaticView(p))
		})

		rg.GET("/about", func(c *gin.Context) {
			p := page.AboutPage(a.site, l)
			renderHTML(c, http.StatusOK, page.StaticView(p))
		})

		rg.GET("/artikel/:slug", func(c *gin.Context) {
			log := middleware.Log(c, a.log).With(zap.String("locale", string(l)))
			p, err := a.content.ArticlePage(c.Request.Context(), c.Param("slug"), l)
			switch {
			case errors.Is(err, errs.ErrNotFound):
				c.String(http.StatusNotFound, notFoundText[l])
				return
			case err != nil:
				log.Error("Rendering article page failed", zap.Error(err))
				c.String(http.StatusBadGateway, "Service unavailable")
				return
			}
			renderHTML(c, http.StatusOK, page.ArticleView(*p))
		})
	}
}
