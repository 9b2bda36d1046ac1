package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
)

type CompaniesHandler struct {
	companyRepo repository.CompanyRepo
	noteRepo    repository.NoteRepo
	contactRepo repository.ContactRepo
}

func NewCompaniesHandler(cr repository.CompanyRepo, nr repository.NoteRepo, pr repository.ContactRepo) *CompaniesHandler {
	return &CompaniesHandler{companyRepo: cr, noteRepo: nr, contactRepo: pr}
}

type companyRequest struct {
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Address  string `json:"address"`
	City     string `json:"city"`
	User     int64  `json:"user"`
	Industry int64  `json:"industry"`
}

// Create registers a company owned by the authenticated user.
func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaCompany, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var req companyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	// owner defaults to the caller; an explicit user id in the body wins
	userID := req.User
	if userID == 0 {
		userID, _ = principal(r)
	}
	company := models.Company{
		Name:       req.Name,
		NIP:        req.NIP,
		Address:    req.Address,
		City:       req.City,
		UserID:     userID,
		IndustryID: req.Industry,
	}
	id, err := h.companyRepo.CreateCompany(ctx, &company)
	if err != nil {
		writeServerError(w, "create company", err)
		return
	}
	company.ID = id

	writeJSON(w, company, http.StatusCreated)
}

type listCompaniesRequest struct {
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Industry int64  `json:"industry"`
	User     int64  `json:"user"`
	models.ListParams
}

func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	req := listCompaniesRequest{ListParams: models.ListParams{Order: "name", OrderType: "asc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.companyRepo.ListCompanies(r.Context(), models.CompanyFilter{
		Name:       req.Name,
		NIP:        req.NIP,
		Address:    req.Address,
		City:       req.City,
		IndustryID: req.Industry,
		UserID:     req.User,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list companies", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.companyRepo.GetCompanyDetail(r.Context(), id)
	if err != nil {
		writeServerError(w, "get company", err)
		return
	}
	if detail == nil {
		writeMsg(w, http.StatusNotFound, "company not found")
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

func (h *CompaniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaUpdateCompany, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	company, err := h.companyRepo.GetCompanyByID(ctx, id)
	if err != nil {
		writeServerError(w, "get company", err)
		return
	}
	if company == nil {
		writeMsg(w, http.StatusNotFound, "company not found")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		NIP      *string `json:"nip"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		User     *int64  `json:"user"`
		Industry *int64  `json:"industry"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.NIP != nil {
		company.NIP = *req.NIP
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.User != nil {
		company.UserID = *req.User
	}
	if req.Industry != nil {
		company.IndustryID = *req.Industry
	}

	if err := h.companyRepo.UpdateCompany(ctx, company); err != nil {
		writeServerError(w, "update company", err)
		return
	}

	detail, err := h.companyRepo.GetCompanyDetail(ctx, id)
	if err != nil || detail == nil {
		writeServerError(w, "get company", err)
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

func (h *CompaniesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	company, err := h.companyRepo.SoftDeleteCompany(r.Context(), id)
	if err != nil {
		writeServerError(w, "delete company", err)
		return
	}
	if company == nil {
		writeMsg(w, http.StatusNotFound, "company not found")
		return
	}

	writeJSON(w, company, http.StatusOK)
}

// Notes lists a company's notes with an optional filter body, newest first
// unless the caller orders otherwise.
func (h *CompaniesHandler) Notes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req := struct {
		Content string `json:"content"`
		User    int64  `json:"user"`
		models.ListParams
	}{ListParams: models.ListParams{Order: "createdAt", OrderType: "desc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.noteRepo.ListNotes(r.Context(), models.NoteFilter{
		Content:    req.Content,
		UserID:     req.User,
		CompanyID:  id,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list company notes", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

// Contacts lists a company's contact persons with an optional filter body.
func (h *CompaniesHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req := struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Phone   string `json:"phone"`
		Mail    string `json:"mail"`
		models.ListParams
	}{ListParams: models.ListParams{Order: "name", OrderType: "asc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.contactRepo.ListContacts(r.Context(), models.ContactFilter{
		Name:       req.Name,
		Surname:    req.Surname,
		Phone:      req.Phone,
		Mail:       req.Mail,
		CompanyID:  id,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list company contacts", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}
