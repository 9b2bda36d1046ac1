package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	userRepo    repository.UserRepo
	roleRepo    repository.RoleRepo
	companyRepo repository.CompanyRepo
	noteRepo    repository.NoteRepo
	contactRepo repository.ContactRepo
}

func NewUsersHandler(ur repository.UserRepo, rr repository.RoleRepo, cr repository.CompanyRepo, nr repository.NoteRepo, pr repository.ContactRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur, roleRepo: rr, companyRepo: cr, noteRepo: nr, contactRepo: pr}
}

type registerRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth"`
	Role        string `json:"role"`
}

// Register creates a new user. The login check here is a best-effort early
// rejection; the unique index on login is what actually prevents duplicates
// under concurrent requests. No token is issued, registration is followed by
// a separate login call.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaRegisterUser, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	existing, err := h.userRepo.GetUserByLogin(ctx, req.Login)
	if err != nil {
		writeServerError(w, "login lookup", err)
		return
	}
	if existing != nil {
		writeFieldErrors(w, http.StatusBadRequest, []validation.FieldError{{Msg: "login already taken", Param: "login"}})
		return
	}

	roleName := req.Role
	if roleName == "" {
		roleName = models.RolePracownik
	}
	role, err := h.roleRepo.GetRoleByName(ctx, roleName)
	if err != nil {
		writeServerError(w, "role lookup", err)
		return
	}
	if role == nil {
		writeFieldErrors(w, http.StatusBadRequest, []validation.FieldError{{Msg: "unknown role", Param: "role"}})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeServerError(w, "hash password", err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		DateOfBirth:  req.DateOfBirth,
		Login:        req.Login,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	id, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		writeServerError(w, "create user", err)
		return
	}
	user.ID = id

	writeJSON(w, user, http.StatusCreated)
}

type listUsersRequest struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth"`
	Login       string `json:"login"`
	Role        int64  `json:"role"`
	models.ListParams
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	req := listUsersRequest{ListParams: models.ListParams{Order: "name", OrderType: "asc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.userRepo.ListUsers(r.Context(), models.UserFilter{
		Name:        req.Name,
		Surname:     req.Surname,
		DateOfBirth: req.DateOfBirth,
		Login:       req.Login,
		RoleID:      req.Role,
		ListParams:  req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list users", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.userRepo.GetUserDetail(r.Context(), id)
	if err != nil {
		writeServerError(w, "get user", err)
		return
	}
	if detail == nil {
		writeMsg(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

// Update applies a partial field replace. Which fields the caller may touch
// is decided by the field policy table, not inside this handler.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	_, role := principal(r)
	denied, forbidden := checkFieldPolicy(userUpdateRules, fields, role)
	if len(denied) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, denied)
		return
	}
	if len(forbidden) > 0 {
		writeMsg(w, http.StatusForbidden, strings.Join(forbidden, "; "))
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaUpdateUser, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		writeServerError(w, "get user", err)
		return
	}
	if user == nil {
		writeMsg(w, http.StatusNotFound, "user not found")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Surname     *string `json:"surname"`
		DateOfBirth *string `json:"dateOfBirth"`
		Role        *int64  `json:"role"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = *req.DateOfBirth
	}
	if req.Role != nil {
		newRole, err := h.roleRepo.GetRoleByID(ctx, *req.Role)
		if err != nil {
			writeServerError(w, "role lookup", err)
			return
		}
		if newRole == nil {
			writeFieldErrors(w, http.StatusBadRequest, []validation.FieldError{{Msg: "unknown role", Param: "role"}})
			return
		}
		user.RoleID = newRole.ID
	}

	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		writeServerError(w, "update user", err)
		return
	}

	detail, err := h.userRepo.GetUserDetail(ctx, id)
	if err != nil || detail == nil {
		writeServerError(w, "get user", err)
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userRepo.SoftDeleteUser(r.Context(), id)
	if err != nil {
		writeServerError(w, "delete user", err)
		return
	}
	if user == nil {
		writeMsg(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *UsersHandler) Companies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	companies, err := h.companyRepo.ListCompaniesByUser(r.Context(), id)
	if err != nil {
		writeServerError(w, "list user companies", err)
		return
	}

	writeJSON(w, companies, http.StatusOK)
}

func (h *UsersHandler) Notes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	notes, err := h.noteRepo.ListNotesByUser(r.Context(), id)
	if err != nil {
		writeServerError(w, "list user notes", err)
		return
	}

	writeJSON(w, notes, http.StatusOK)
}

func (h *UsersHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contacts, err := h.contactRepo.ListContactsByUser(r.Context(), id)
	if err != nil {
		writeServerError(w, "list user contacts", err)
		return
	}

	writeJSON(w, contacts, http.StatusOK)
}

// pathID parses the {id} route variable, reporting a 400 on garbage input.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeMsg(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
