package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Login checks the credentials and issues a signed token embedding the user's
// id and role name. Unknown logins and wrong passwords produce the same
// response, so callers cannot probe which logins exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaLogin, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userRepo.GetUserByLogin(ctx, req.Login)
	if err != nil {
		writeServerError(w, "login lookup", err)
		return
	}
	if user == nil {
		writeFieldErrors(w, http.StatusUnauthorized, []validation.FieldError{{Msg: "invalid credentials"}})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeFieldErrors(w, http.StatusUnauthorized, []validation.FieldError{{Msg: "invalid credentials"}})
		return
	}

	detail, err := h.userRepo.GetUserDetail(ctx, user.ID)
	if err != nil || detail == nil {
		writeServerError(w, "role lookup", err)
		return
	}

	tokenStr, err := h.issueToken(user.ID, detail.Role.Name)
	if err != nil {
		writeServerError(w, "sign token", err)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusOK)
}

// Profile returns the authenticated user's own record, role populated.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := principal(r)
	if userID == 0 {
		writeMsg(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	detail, err := h.userRepo.GetUserDetail(r.Context(), userID)
	if err != nil {
		writeServerError(w, "profile lookup", err)
		return
	}
	if detail == nil {
		writeMsg(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

func (h *AuthHandler) issueToken(userID int64, roleName string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"role":   roleName,
		"exp":    time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}
