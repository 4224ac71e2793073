package mail

import (
	"strings"
	"testing"

	"studyhub_backend/internal/feature/account/usecase"
)

func TestRenderer_RenderLink(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	body, err := r.RenderLink(usecase.LinkVars{
		Host:     "https://studyhub.example",
		Link:     "/check-email-token?token=abc123&email=nick1%40example.com",
		Nickname: "nick1",
		LinkName: "Confirm your email address",
		Message:  "Click the link below to complete your registration.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantParts := []string{
		"Hi nick1,",
		"Click the link below to complete your registration.",
		"Confirm your email address: https://studyhub.example/check-email-token?token=abc123&email=nick1%40example.com",
	}
	for _, part := range wantParts {
		if !strings.Contains(body, part) {
			t.Errorf("expected body to contain %q, got:\n%s", part, body)
		}
	}
}

func TestRenderer_RenderLink_LoginLink(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	body, err := r.RenderLink(usecase.LinkVars{
		Host:     "http://localhost:8080",
		Link:     "/login-by-email?token=tok&email=a%40b.c",
		Nickname: "reader",
		LinkName: "Log in",
		Message:  "Use the link below to log in.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(body, "Log in: http://localhost:8080/login-by-email?token=tok&email=a%40b.c") {
		t.Errorf("expected login link line, got:\n%s", body)
	}
}
