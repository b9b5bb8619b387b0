package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP bestimmt die Client-Adresse hinter Proxy und CDN:
// erster Eintrag aus X-Forwarded-For, dann X-Real-IP, dann die Verbindung.
// Nur zur Speicherung am Kommentar; als Schlüssel für Limits ungeeignet, da vom Client setzbar.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
