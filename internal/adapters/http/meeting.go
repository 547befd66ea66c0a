package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/config"
)

type MeetingResponse struct {
	Meeting string `json:"meeting"`
}

// MeetingHandler issues a one-time meeting URL. The caller must present
// the shared API secret in the Authorization header; this is the only
// authentication the server models.
func MeetingHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != cfg.APISecret {
			log.Warn().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("meeting request unauthorized")
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized!"})
			return
		}
		meeting := meetingURL(c.Request.Host)
		log.Info().Str("module", "adapters.http").Str("meeting", meeting).Msg("meeting issued")
		c.JSON(http.StatusOK, MeetingResponse{Meeting: meeting})
	}
}

func meetingURL(host string) string {
	scheme := "https"
	if strings.Contains(host, "localhost") {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/join/%s", scheme, host, uuid.NewString())
}
