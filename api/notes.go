package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
)

type NotesHandler struct {
	noteRepo repository.NoteRepo
}

func NewNotesHandler(nr repository.NoteRepo) *NotesHandler {
	return &NotesHandler{noteRepo: nr}
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaNote, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var req struct {
		Content string `json:"content"`
		User    int64  `json:"user"`
		Company int64  `json:"company"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	userID := req.User
	if userID == 0 {
		userID, _ = principal(r)
	}
	note := models.Note{
		Content:   req.Content,
		UserID:    userID,
		CompanyID: req.Company,
	}
	id, err := h.noteRepo.CreateNote(ctx, &note)
	if err != nil {
		writeServerError(w, "create note", err)
		return
	}
	note.ID = id

	writeJSON(w, note, http.StatusCreated)
}

type listNotesRequest struct {
	Content string `json:"content"`
	User    int64  `json:"user"`
	Company int64  `json:"company"`
	models.ListParams
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	req := listNotesRequest{ListParams: models.ListParams{Order: "createdAt", OrderType: "desc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.noteRepo.ListNotes(r.Context(), models.NoteFilter{
		Content:    req.Content,
		UserID:     req.User,
		CompanyID:  req.Company,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "list notes", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	note, err := h.noteRepo.GetNoteByID(r.Context(), id)
	if err != nil {
		writeServerError(w, "get note", err)
		return
	}
	if note == nil {
		writeMsg(w, http.StatusNotFound, "note not found")
		return
	}

	writeJSON(w, note, http.StatusOK)
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	errs, err := validation.Check(ctx, validation.SchemaUpdateNote, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	note, err := h.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		writeServerError(w, "get note", err)
		return
	}
	if note == nil {
		writeMsg(w, http.StatusNotFound, "note not found")
		return
	}

	var req struct {
		Content *string `json:"content"`
		Company *int64  `json:"company"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Company != nil {
		note.CompanyID = *req.Company
	}

	if err := h.noteRepo.UpdateNote(ctx, note); err != nil {
		writeServerError(w, "update note", err)
		return
	}

	writeJSON(w, note, http.StatusOK)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	note, err := h.noteRepo.SoftDeleteNote(r.Context(), id)
	if err != nil {
		writeServerError(w, "delete note", err)
		return
	}
	if note == nil {
		writeMsg(w, http.StatusNotFound, "note not found")
		return
	}

	writeJSON(w, note, http.StatusOK)
}
