package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
)

type ContactsHandler struct {
	contactRepo repository.ContactRepo
}

func NewContactsHandler(cr repository.ContactRepo) *ContactsHandler {
	return &ContactsHandler{contactRepo: cr}
}

type contactRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	Mail     string `json:"mail"`
	Position string `json:"position"`
	User     int64  `json:"user"`
	Company  int64  `json:"company"`
}

func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaContact, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	var req contactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	// A contact must be reachable somehow. The schema cannot express this
	// cross-field rule with a sensible message, so it lives here.
	if req.Phone == "" && req.Mail == "" {
		errs = append(errs, validation.FieldError{Msg: "phone or mail is required", Param: "phone"})
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	userID := req.User
	if userID == 0 {
		userID, _ = principal(r)
	}
	contact := models.ContactPerson{
		Name:      req.Name,
		Surname:   req.Surname,
		Phone:     req.Phone,
		Mail:      req.Mail,
		Position:  req.Position,
		UserID:    userID,
		CompanyID: req.Company,
	}
	id, err := h.contactRepo.CreateContact(ctx, &contact)
	if err != nil {
		writeServerError(w, "create contact", err)
		return
	}
	contact.ID = id

	writeJSON(w, contact, http.StatusCreated)
}

type listContactsRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Mail    string `json:"mail"`
	User    int64  `json:"user"`
	Company int64  `json:"company"`
	models.ListParams
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	req := listContactsRequest{ListParams: models.ListParams{Order: "name", OrderType: "asc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.contactRepo.ListContacts(r.Context(), models.ContactFilter{
		Name:       req.Name,
		Surname:    req.Surname,
		Phone:      req.Phone,
		Mail:       req.Mail,
		UserID:     req.User,
		CompanyID:  req.Company,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list contacts", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contact, err := h.contactRepo.GetContactByID(r.Context(), id)
	if err != nil {
		writeServerError(w, "get contact", err)
		return
	}
	if contact == nil {
		writeMsg(w, http.StatusNotFound, "contact person not found")
		return
	}

	writeJSON(w, contact, http.StatusOK)
}

func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	errs, err := validation.Check(ctx, validation.SchemaUpdateContact, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	contact, err := h.contactRepo.GetContactByID(ctx, id)
	if err != nil {
		writeServerError(w, "get contact", err)
		return
	}
	if contact == nil {
		writeMsg(w, http.StatusNotFound, "contact person not found")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Surname  *string `json:"surname"`
		Phone    *string `json:"phone"`
		Mail     *string `json:"mail"`
		Position *string `json:"position"`
		Company  *int64  `json:"company"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Surname != nil {
		contact.Surname = *req.Surname
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Mail != nil {
		contact.Mail = *req.Mail
	}
	if req.Position != nil {
		contact.Position = *req.Position
	}
	if req.Company != nil {
		contact.CompanyID = *req.Company
	}

	if contact.Phone == "" && contact.Mail == "" {
		writeFieldErrors(w, http.StatusBadRequest, []validation.FieldError{{Msg: "phone or mail is required", Param: "phone"}})
		return
	}

	if err := h.contactRepo.UpdateContact(ctx, contact); err != nil {
		writeServerError(w, "update contact", err)
		return
	}

	writeJSON(w, contact, http.StatusOK)
}

func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contact, err := h.contactRepo.SoftDeleteContact(r.Context(), id)
	if err != nil {
		writeServerError(w, "delete contact", err)
		return
	}
	if contact == nil {
		writeMsg(w, http.StatusNotFound, "contact person not found")
		return
	}

	writeJSON(w, contact, http.StatusOK)
}
