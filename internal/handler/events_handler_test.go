package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"juegos/backend/internal/hub"
	"juegos/backend/internal/models"
)

func TestStreamGameEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	events := hub.NewHub()
	r := gin.New()
	r.GET("/api/events/games", NewEventsHandler(events).StreamGameEvents)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events/games", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	deadline := time.Now().Add(2 * time.Second)
	for events.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := events.Publish(hub.Event{Type: models.EventGameCreated, Payload: map[string]string{"id": "1"}}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	scanner := bufio.NewScanner(resp.Body)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && len(lines) > 0 {
			break
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "event:game") || !strings.Contains(joined, string(models.EventGameCreated)) {
		t.Fatalf("unexpected stream content %q", joined)
	}
}
