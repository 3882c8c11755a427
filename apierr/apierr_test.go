package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusAndIs(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NotFound("Topic not found"))
	if got := Status(wrapped); got != http.StatusNotFound {
		t.Fatalf("status=%d", got)
	}
	if !Is(wrapped, CodeNotFound) {
		t.Fatal("expected not_found code")
	}
	if Is(wrapped, CodeValidation) {
		t.Fatal("unexpected validation code")
	}
	if got := Status(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status=%d", got)
	}
}

func TestGenerationMessage(t *testing.T) {
	cause := errors.New("AI response missing required fields")
	err := Generation(cause)
	if err.Error() != "Failed to generate content: AI response missing required fields" {
		t.Fatalf("message=%q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should unwrap")
	}
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"validation", Validation("bad"), http.StatusBadRequest, "bad"},
		{"unauthorized", Unauthorized("Not authenticated"), http.StatusUnauthorized, "Not authenticated"},
		{"untyped", errors.New("db down"), http.StatusInternalServerError, "Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Respond(c, tc.err)
			if w.Code != tc.status {
				t.Fatalf("status=%d want %d", w.Code, tc.status)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["detail"] != tc.detail {
				t.Fatalf("detail=%q want %q", body["detail"], tc.detail)
			}
		})
	}
}
