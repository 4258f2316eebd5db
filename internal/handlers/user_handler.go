package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

type UserHandler struct {
	Service     *services.UserService
	OAuth       *oauth2.Config
	FrontendURL string
	GraphURL    string
	ErrorLog    interface{ Printf(string, ...interface{}) }
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	user.Password = ""
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	user, tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Validate confirms the access token is still good. The middleware already did the
// work; this just reports who the caller is.
func (h *UserHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	isStaff, _ := r.Context().Value("is_staff").(bool)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"valid":    true,
		"user_id":  userID,
		"is_staff": isStaff,
	})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(users)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	user, err := h.Service.GetUserByID(r.Context(), id)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoginMicrosoft redirects the browser to the institutional Microsoft login page.
// The CSRF state is an unguessable random token, echoed back via cookie on callback.
func (h *UserHandler) LoginMicrosoft(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.TokenManager.NewRefreshToken()
	if err != nil {
		h.ErrorLog.Printf("oauth state: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
	http.Redirect(w, r, h.OAuth.AuthCodeURL(state), http.StatusFound)
}

type graphProfile struct {
	DisplayName string `json:"displayName"`
	GivenName   string `json:"givenName"`
	Surname     string `json:"surname"`
	Mail        string `json:"mail"`
	Principal   string `json:"userPrincipalName"`
}

// CallbackMicrosoft completes the authorization code flow, provisions the
// user from the Graph profile and hands tokens back to the frontend.
func (h *UserHandler) CallbackMicrosoft(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := h.OAuth.Exchange(r.Context(), code)
	if err != nil {
		h.ErrorLog.Printf("oauth exchange: %v", err)
		http.Error(w, "Failed to exchange authorization code", http.StatusBadGateway)
		return
	}

	profile, err := h.fetchProfile(r.Context(), token)
	if err != nil {
		h.ErrorLog.Printf("graph profile: %v", err)
		http.Error(w, "Failed to fetch user profile", http.StatusBadGateway)
		return
	}

	email := profile.Mail
	if email == "" {
		email = profile.Principal
	}
	if email == "" {
		http.Error(w, "Profile has no email", http.StatusBadGateway)
		return
	}

	user, err := h.Service.UpsertFromSSO(r.Context(), models.User{
		Email:     email,
		FirstName: profile.GivenName,
		LastName:  profile.Surname,
	})
	if err != nil {
		http.Error(w, "Failed to provision user", http.StatusInternalServerError)
		return
	}

	tokens, err := h.Service.IssueTokens(r.Context(), user)
	if err != nil {
		http.Error(w, "Failed to issue tokens", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.FrontendURL, http.StatusFound)
}

func (h *UserHandler) fetchProfile(ctx context.Context, token *oauth2.Token) (graphProfile, error) {
	client := h.OAuth.Client(ctx, token)
	graphURL := h.GraphURL
	if graphURL == "" {
		graphURL = "https://graph.microsoft.com/v1.0/me"
	}
	resp, err := client.Get(graphURL)
	if err != nil {
		return graphProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return graphProfile{}, fmt.Errorf("graph returned %d", resp.StatusCode)
	}
	var profile graphProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return graphProfile{}, err
	}
	return profile, nil
}
