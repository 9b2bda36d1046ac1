package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webert/crm/api"
	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/pkg/repository/mock"
)

func TestCreateContact(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantParam  string
	}{
		{
			name:       "MissingSurname",
			body:       map[string]any{"name": "Jan", "phone": "600700800", "company": 1},
			wantStatus: http.StatusBadRequest,
			wantParam:  "surname",
		},
		{
			name:       "NoPhoneNoMail",
			body:       map[string]any{"name": "Jan", "surname": "Kowalski", "company": 1},
			wantStatus: http.StatusBadRequest,
			wantParam:  "phone",
		},
		{
			name:       "BadMail",
			body:       map[string]any{"name": "Jan", "surname": "Kowalski", "mail": "nope", "company": 1},
			wantStatus: http.StatusBadRequest,
			wantParam:  "mail",
		},
		{
			name:       "PhoneOnly",
			body:       map[string]any{"name": "Jan", "surname": "Kowalski", "phone": "600700800", "company": 1},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MailOnly",
			body:       map[string]any{"name": "Jan", "surname": "Kowalski", "mail": "jan@example.com", "position": "handlowiec", "company": 1},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			handler := api.NewContactsHandler(mocks.Contacts)

			req := asPrincipal(httptest.NewRequest(http.MethodPost, "/api/contact-persons", jsonBody(tt.body)), 5, models.RolePracownik)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}

			if tt.wantParam != "" {
				var er struct {
					Errors []struct {
						Param string `json:"param"`
					} `json:"errors"`
				}
				if err := json.Unmarshal(data, &er); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				found := false
				for _, e := range er.Errors {
					if e.Param == tt.wantParam {
						found = true
					}
				}
				if !found {
					t.Fatalf("expected an error naming %q, got %s", tt.wantParam, string(data))
				}
			}

			if tt.wantStatus == http.StatusCreated {
				var c models.ContactPerson
				if err := json.Unmarshal(data, &c); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if c.UserID != 5 {
					t.Fatalf("expected owner from the principal, got %d", c.UserID)
				}
			}
		})
	}
}

func TestUpdateContactKeepsReachability(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Contacts.Stored = []*models.ContactPerson{
		{ID: 1, Name: "Jan", Surname: "Kowalski", Phone: "600700800", UserID: 5, CompanyID: 1},
	}
	handler := api.NewContactsHandler(mocks.Contacts)

	// clearing the only contact channel is rejected
	req := withID(httptest.NewRequest(http.MethodPut, "/api/contact-persons/1", jsonBody(map[string]any{"phone": ""})), 1)
	req = asPrincipal(req, 5, models.RolePracownik)
	w := httptest.NewRecorder()
	handler.Update(w, req)
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 when neither phone nor mail remains, got %d", w.Result().StatusCode)
	}

	// swapping phone for mail in one request is fine
	req = withID(httptest.NewRequest(http.MethodPut, "/api/contact-persons/1", jsonBody(map[string]any{"phone": "", "mail": "jan@example.com"})), 1)
	req = asPrincipal(req, 5, models.RolePracownik)
	w = httptest.NewRecorder()
	handler.Update(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
	stored := mocks.Contacts.Stored[0]
	if stored.Phone != "" || stored.Mail != "jan@example.com" {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestContactLifecycle(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Contacts.Stored = []*models.ContactPerson{
		{ID: 1, Name: "Jan", Surname: "Kowalski", Phone: "600700800", UserID: 5, CompanyID: 1},
	}
	handler := api.NewContactsHandler(mocks.Contacts)

	req := withID(httptest.NewRequest(http.MethodGet, "/api/contact-persons/1", nil), 1)
	w := httptest.NewRecorder()
	handler.Get(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}

	req = withID(httptest.NewRequest(http.MethodDelete, "/api/contact-persons/1", nil), 1)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}

	// gone after the soft delete
	req = withID(httptest.NewRequest(http.MethodGet, "/api/contact-persons/1", nil), 1)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Result().StatusCode)
	}
}

func TestListContacts(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Contacts.Stored = []*models.ContactPerson{
		{ID: 1, Name: "Jan", Surname: "Kowalski", Phone: "600700800", UserID: 5, CompanyID: 1},
	}
	handler := api.NewContactsHandler(mocks.Contacts)

	body := map[string]any{"mail": "example", "company": 1}
	req := asPrincipal(httptest.NewRequest(http.MethodPost, "/api/contact-persons/all", jsonBody(body)), 5, models.RolePracownik)
	w := httptest.NewRecorder()
	handler.List(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var lr struct {
		Data  []models.ContactPerson `json:"data"`
		Count int64                  `json:"count"`
	}
	decodeBody(t, res, &lr)
	if lr.Count != 1 {
		t.Fatalf("unexpected envelope: %+v", lr)
	}

	f := mocks.Contacts.LastFilter
	if f.Mail != "example" || f.CompanyID != 1 {
		t.Fatalf("filter not forwarded: %+v", f)
	}
}
