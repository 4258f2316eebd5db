package handlers

import (
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"golang.org/x/oauth2"

	"acheiBack/internal/services"
	"acheiBack/utils"
)

func newOAuthTestHandler(t *testing.T) *UserHandler {
	t.Helper()
	mgr, err := utils.NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return &UserHandler{
		Service: &services.UserService{TokenManager: mgr},
		OAuth: &oauth2.Config{
			ClientID:    "client-id",
			RedirectURL: "http://localhost:4000/auth/microsoft/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
				TokenURL: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
			},
		},
		ErrorLog: log.New(os.Stderr, "", 0),
	}
}

func loginState(t *testing.T, h *UserHandler) (cookie string, redirect *url.URL) {
	t.Helper()
	w := httptest.NewRecorder()
	h.LoginMicrosoft(w, httptest.NewRequest(http.MethodGet, "/auth/microsoft/login", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "oauth_state" {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("expected oauth_state cookie to be set")
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect location: %v", err)
	}
	return cookie, loc
}

func TestLoginMicrosoftStateIsRandomPerRequest(t *testing.T) {
	h := newOAuthTestHandler(t)

	first, loc := loginState(t, h)
	second, _ := loginState(t, h)

	if len(first) != 64 {
		t.Fatalf("expected a 32-byte hex state, got %q", first)
	}
	if first == second {
		t.Fatal("state must differ between requests")
	}
	if got := loc.Query().Get("state"); got != first {
		t.Fatalf("redirect state %q does not match cookie %q", got, first)
	}
}
