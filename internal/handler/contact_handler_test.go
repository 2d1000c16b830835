package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/service"
)

func TestSubmitContactOutcomes(t *testing.T) {
	api, _ := setupHandlerTest(t)

	tests := []struct {
		name       string
		sender     *recordingSender
		recipients []string
		body       gin.H
		language   string
		wantStatus int
		wantError  string
		wantSent   int
	}{
		{
			name:       "success",
			sender:     &recordingSender{},
			recipients: []string{"office@example.org"},
			body:       gin.H{"name": "Olena", "email": "olena@example.com", "message": "Hello"},
			wantStatus: http.StatusOK,
			wantSent:   1,
		},
		{
			name:       "missing fields",
			sender:     &recordingSender{},
			recipients: []string{"office@example.org"},
			body:       gin.H{"name": "Olena", "email": "olena@example.com", "message": "   "},
			language:   "en",
			wantStatus: http.StatusBadRequest,
			wantError:  "All fields are required.",
		},
		{
			name:       "bad email",
			sender:     &recordingSender{},
			recipients: []string{"office@example.org"},
			body:       gin.H{"name": "Olena", "email": "not-an-email", "message": "Hello"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Некоректна адреса електронної пошти.",
		},
		{
			name:       "no recipients",
			sender:     &recordingSender{},
			body:       gin.H{"name": "Olena", "email": "olena@example.com", "message": "Hello"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "transport failure",
			sender:     &recordingSender{err: errors.New("connection refused")},
			recipients: []string{"office@example.org"},
			body:       gin.H{"name": "Olena", "email": "olena@example.com", "message": "Hello"},
			wantStatus: http.StatusInternalServerError,
			wantSent:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.contact = service.NewContactService(tt.sender, "noreply@example.org", tt.recipients, nil)
			r := newTestEngine(api)

			var headers []string
			if tt.language != "" {
				headers = []string{"Accept-Language", tt.language}
			}
			w := performRequest(t, r, http.MethodPost, "/api/contact/", tt.body, nil, headers...)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantError != "" {
				var body map[string]string
				decodeJSON(t, w, &body)
				if body["error"] != tt.wantError {
					t.Fatalf("expected error %q, got %q", tt.wantError, body["error"])
				}
			}
			if len(tt.sender.sent) != tt.wantSent {
				t.Fatalf("expected %d messages sent, got %d", tt.wantSent, len(tt.sender.sent))
			}
		})
	}
}

func TestSubmitContactAcceptsFormEncoding(t *testing.T) {
	api, _ := setupHandlerTest(t)
	sender := &recordingSender{}
	api.contact = service.NewContactService(sender, "noreply@example.org", []string{"office@example.org"}, nil)
	r := newTestEngine(api)

	form := "name=Taras&email=taras%40example.com&message=%D0%9F%D1%80%D0%B8%D0%B2%D1%96%D1%82"
	w := performRawRequest(r, http.MethodPost, "/api/contact/", "application/x-www-form-urlencoded", strings.NewReader(form))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(sender.sent) != 1 || sender.sent[0].ReplyTo != "taras@example.com" {
		t.Fatalf("unexpected sent messages %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[0].Body, "Привіт") {
		t.Fatalf("expected message body to carry the text, got %q", sender.sent[0].Body)
	}
}
