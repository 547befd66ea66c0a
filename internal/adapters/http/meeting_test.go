package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/huddlelabs/huddle/internal/config"
)

func meetingRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/meeting", MeetingHandler(&config.Config{APISecret: secret}))
	return r
}

func TestMeetingEndpoint(t *testing.T) {
	r := meetingRouter("s3cret")

	t.Run("rejects missing authorization", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meeting", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status=%d, want 403", w.Code)
		}
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meeting", nil)
		req.Header.Set("Authorization", "wrong")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status=%d, want 403", w.Code)
		}
	})

	t.Run("issues a join url", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meeting", nil)
		req.Host = "meet.example.com"
		req.Header.Set("Authorization", "s3cret")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, want 200", w.Code)
		}
		var resp MeetingResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(resp.Meeting, "https://meet.example.com/join/") {
			t.Fatalf("meeting=%q, want https join url", resp.Meeting)
		}
	})

	t.Run("localhost stays http", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meeting", nil)
		req.Host = "localhost:3000"
		req.Header.Set("Authorization", "s3cret")
		r.ServeHTTP(w, req)
		var resp MeetingResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(resp.Meeting, "http://localhost:3000/join/") {
			t.Fatalf("meeting=%q, want http join url", resp.Meeting)
		}
	})
}
