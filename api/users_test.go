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
	"golang.org/x/crypto/bcrypt"
)

func seedRoles(m *mock.Mocks) {
	m.Roles.Stored = []models.Role{
		{ID: 1, Name: models.RoleAdministrator, Number: 1},
		{ID: 2, Name: models.RolePracownik, Number: 2},
		{ID: 3, Name: models.RoleModerator, Number: 3},
	}
	m.Users.Roles = map[int64]models.Role{
		1: m.Roles.Stored[0],
		2: m.Roles.Stored[1],
		3: m.Roles.Stored[2],
	}
}

func usersHandler(m *mock.Mocks) *api.UsersHandler {
	return api.NewUsersHandler(m.Users, m.Roles, m.Companies, m.Notes, m.Contacts)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, m *mock.Mocks, body []byte)
	}{
		{
			name:       "InvalidRequest",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingFields",
			body:       map[string]string{"login": "nBujny"},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var er struct {
					Errors []struct {
						Param string `json:"param"`
					} `json:"errors"`
				}
				if err := json.Unmarshal(b, &er); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				want := map[string]bool{"password": false, "name": false, "surname": false}
				for _, e := range er.Errors {
					if _, ok := want[e.Param]; ok {
						want[e.Param] = true
					}
				}
				for p, seen := range want {
					if !seen {
						t.Fatalf("expected an error naming %q, got %s", p, string(b))
					}
				}
			},
		},
		{
			name:       "ShortPassword",
			body:       map[string]string{"login": "nBujny", "password": "short", "name": "Norbert", "surname": "Bujny"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateLogin",
			body: map[string]string{"login": "nBujny", "password": "haslo1234", "name": "Norbert", "surname": "Bujny"},
			prepare: func(m *mock.Mocks) {
				m.Users.Stored = []*models.User{{ID: 1, Login: "nBujny", RoleID: 2}}
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var er struct {
					Errors []struct {
						Param string `json:"param"`
					} `json:"errors"`
				}
				if err := json.Unmarshal(b, &er); err != nil || len(er.Errors) == 0 {
					t.Fatalf("unexpected body: %s", string(b))
				}
				if er.Errors[0].Param != "login" {
					t.Fatalf("expected param login, got %q", er.Errors[0].Param)
				}
			},
		},
		{
			name:       "UnknownRole",
			body:       map[string]string{"login": "nBujny", "password": "haslo1234", "name": "Norbert", "surname": "Bujny", "role": "Prezes"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DefaultsToPracownik",
			body:       map[string]string{"login": "nBujny", "password": "haslo1234", "name": "Norbert", "surname": "Bujny"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var u models.User
				if err := json.Unmarshal(b, &u); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if u.ID == 0 || u.RoleID != 2 {
					t.Fatalf("unexpected user: %+v", u)
				}
				stored := m.Users.Stored[len(m.Users.Stored)-1]
				if stored.PasswordHash == "" || stored.PasswordHash == "haslo1234" {
					t.Fatalf("password stored without hashing: %q", stored.PasswordHash)
				}
				if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("haslo1234")); err != nil {
					t.Fatalf("hash does not verify: %v", err)
				}
			},
		},
		{
			name:       "ExplicitRole",
			body:       map[string]string{"login": "amWesolowska", "password": "haslo1234", "name": "Anna", "surname": "Wesołowska", "role": models.RoleAdministrator},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var u models.User
				if err := json.Unmarshal(b, &u); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if u.RoleID != 1 {
					t.Fatalf("expected administrator role id, got %d", u.RoleID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			seedRoles(mocks)
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := usersHandler(mocks)

			req := httptest.NewRequest(http.MethodPost, "/api/users", jsonBody(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, mocks, data)
			}
		})
	}
}

func TestRegisterNoPasswordInResponse(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	handler := usersHandler(mocks)

	body := map[string]string{"login": "nBujny", "password": "haslo1234", "name": "Norbert", "surname": "Bujny"}
	req := httptest.NewRequest(http.MethodPost, "/api/users", jsonBody(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	res := w.Result()
	defer res.Body.Close()
	data, _ := io.ReadAll(res.Body)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := raw[key]; ok {
			t.Fatalf("response leaks %q: %s", key, string(data))
		}
	}
}

func TestListUsers(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	mocks.Users.ListItems = []models.UserListItem{
		{ID: 1, Name: "Anna", Surname: "Wesołowska", Login: "amWesolowska", Role: models.RoleRef{ID: 1, Name: models.RoleAdministrator}},
		{ID: 2, Name: "Norbert", Surname: "Bujny", Login: "nBujny", Role: models.RoleRef{ID: 2, Name: models.RolePracownik}},
	}
	handler := usersHandler(mocks)

	body := map[string]any{"surname": "W", "page": 2, "paginate": 10}
	req := asPrincipal(httptest.NewRequest(http.MethodPost, "/api/users/all", jsonBody(body)), 1, models.RolePracownik)
	w := httptest.NewRecorder()
	handler.List(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var lr struct {
		Data  []models.UserListItem `json:"data"`
		Count int64                 `json:"count"`
	}
	decodeBody(t, res, &lr)
	if len(lr.Data) != 2 || lr.Count != 2 {
		t.Fatalf("unexpected envelope: %+v", lr)
	}

	f := mocks.Users.LastFilter
	if f.Surname != "W" || f.Page != 2 || f.Paginate != 10 {
		t.Fatalf("filter not forwarded: %+v", f)
	}
	// defaults applied when omitted
	if f.Order != "name" || f.OrderType != "asc" {
		t.Fatalf("expected default ordering, got %q %q", f.Order, f.OrderType)
	}
}

func TestGetUser(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	mocks.Users.Stored = []*models.User{{ID: 5, Name: "Norbert", Surname: "Bujny", Login: "nBujny", RoleID: 2}}
	handler := usersHandler(mocks)

	req := withID(httptest.NewRequest(http.MethodGet, "/api/users/5", nil), 5)
	w := httptest.NewRecorder()
	handler.Get(w, req)
	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var detail models.UserDetail
	decodeBody(t, res, &detail)
	if detail.Role.Name != models.RolePracownik {
		t.Fatalf("role not populated: %+v", detail)
	}

	// missing user
	req = withID(httptest.NewRequest(http.MethodGet, "/api/users/99", nil), 99)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Result().StatusCode)
	}

	// garbage id
	req = httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", w.Result().StatusCode)
	}
}

func TestUpdateUserFieldPolicy(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		body       map[string]any
		wantStatus int
		wantRoleID int64
	}{
		{
			name:       "LoginImmutable",
			role:       models.RoleAdministrator,
			body:       map[string]any{"login": "newLogin"},
			wantStatus: http.StatusBadRequest,
			wantRoleID: 2,
		},
		{
			name:       "PasswordImmutable",
			role:       models.RoleAdministrator,
			body:       map[string]any{"password": "newpass123"},
			wantStatus: http.StatusBadRequest,
			wantRoleID: 2,
		},
		{
			name:       "RoleChangeNeedsAdministrator",
			role:       models.RolePracownik,
			body:       map[string]any{"role": 3},
			wantStatus: http.StatusForbidden,
			wantRoleID: 2,
		},
		{
			name:       "RoleChangeByModeratorDenied",
			role:       models.RoleModerator,
			body:       map[string]any{"role": 3},
			wantStatus: http.StatusForbidden,
			wantRoleID: 2,
		},
		{
			name:       "RoleChangeByAdministrator",
			role:       models.RoleAdministrator,
			body:       map[string]any{"role": 3},
			wantStatus: http.StatusOK,
			wantRoleID: 3,
		},
		{
			name:       "UnknownRoleID",
			role:       models.RoleAdministrator,
			body:       map[string]any{"role": 42},
			wantStatus: http.StatusBadRequest,
			wantRoleID: 2,
		},
		{
			name:       "PlainFieldByPracownik",
			role:       models.RolePracownik,
			body:       map[string]any{"surname": "Nowak"},
			wantStatus: http.StatusOK,
			wantRoleID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			seedRoles(mocks)
			mocks.Users.Stored = []*models.User{{ID: 5, Name: "Norbert", Surname: "Bujny", Login: "nBujny", RoleID: 2}}
			handler := usersHandler(mocks)

			req := withID(httptest.NewRequest(http.MethodPut, "/api/users/5", jsonBody(tt.body)), 5)
			req = asPrincipal(req, 1, tt.role)
			w := httptest.NewRecorder()
			handler.Update(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if got := mocks.Users.Stored[0].RoleID; got != tt.wantRoleID {
				t.Fatalf("expected stored role %d, got %d", tt.wantRoleID, got)
			}
		})
	}
}

func TestUpdateUserMergesFields(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	mocks.Users.Stored = []*models.User{{ID: 5, Name: "Norbert", Surname: "Bujny", DateOfBirth: "2000-03-20", Login: "nBujny", RoleID: 2}}
	handler := usersHandler(mocks)

	req := withID(httptest.NewRequest(http.MethodPut, "/api/users/5", jsonBody(map[string]any{"surname": "Nowak"})), 5)
	req = asPrincipal(req, 1, models.RolePracownik)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
	stored := mocks.Users.Stored[0]
	if stored.Surname != "Nowak" {
		t.Fatalf("surname not updated: %+v", stored)
	}
	// untouched fields survive a partial update
	if stored.Name != "Norbert" || stored.DateOfBirth != "2000-03-20" || stored.Login != "nBujny" {
		t.Fatalf("partial update clobbered fields: %+v", stored)
	}
}

func TestDeleteUser(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	mocks.Users.Stored = []*models.User{{ID: 5, Name: "Norbert", Surname: "Bujny", Login: "nBujny", RoleID: 2}}
	handler := usersHandler(mocks)

	req := withID(httptest.NewRequest(http.MethodDelete, "/api/users/5", nil), 5)
	w := httptest.NewRecorder()
	handler.Delete(w, req)
	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var u models.User
	decodeBody(t, res, &u)
	if !u.IsDeleted {
		t.Fatalf("expected the returned user to be marked deleted: %+v", u)
	}

	// second delete finds nothing
	req = withID(httptest.NewRequest(http.MethodDelete, "/api/users/5", nil), 5)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Result().StatusCode)
	}
}

func TestUserOwnedResources(t *testing.T) {
	mocks := mock.NewMocks()
	seedRoles(mocks)
	mocks.Companies.Stored = []*models.Company{
		{ID: 1, Name: "Fanex", NIP: "1111111111", City: "Bydgoszcz", UserID: 5, IndustryID: 1},
		{ID: 2, Name: "Lot", NIP: "2222222222", City: "Warszawa", UserID: 6, IndustryID: 2},
	}
	mocks.Notes.Stored = []*models.Note{
		{ID: 1, Content: "spotkanie w piątek", UserID: 5, CompanyID: 1},
	}
	mocks.Contacts.Stored = []*models.ContactPerson{
		{ID: 1, Name: "Jan", Surname: "Kowalski", Phone: "600700800", UserID: 5, CompanyID: 1},
		{ID: 2, Name: "Piotr", Surname: "Zieliński", Phone: "601701801", UserID: 6, CompanyID: 2},
	}
	handler := usersHandler(mocks)

	req := withID(httptest.NewRequest(http.MethodGet, "/api/users/5/companies", nil), 5)
	w := httptest.NewRecorder()
	handler.Companies(w, req)
	res := w.Result()
	defer res.Body.Close()
	var companies []models.Company
	decodeBody(t, res, &companies)
	if len(companies) != 1 || companies[0].Name != "Fanex" {
		t.Fatalf("unexpected companies: %+v", companies)
	}

	req = withID(httptest.NewRequest(http.MethodGet, "/api/users/5/notes", nil), 5)
	w = httptest.NewRecorder()
	handler.Notes(w, req)
	res = w.Result()
	defer res.Body.Close()
	var notes []models.Note
	decodeBody(t, res, &notes)
	if len(notes) != 1 {
		t.Fatalf("unexpected notes: %+v", notes)
	}

	req = withID(httptest.NewRequest(http.MethodGet, "/api/users/5/contact-persons", nil), 5)
	w = httptest.NewRecorder()
	handler.Contacts(w, req)
	res = w.Result()
	defer res.Body.Close()
	var contacts []models.ContactPerson
	decodeBody(t, res, &contacts)
	if len(contacts) != 1 || contacts[0].Surname != "Kowalski" {
		t.Fatalf("unexpected contacts: %+v", contacts)
	}
}
