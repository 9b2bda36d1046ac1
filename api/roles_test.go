package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webert/crm/api"
	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/pkg/repository/mock"
)

func TestRolesList(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Roles.Stored = []models.Role{
		{ID: 1, Name: models.RoleAdministrator, Number: 1},
		{ID: 2, Name: models.RolePracownik, Number: 2},
		{ID: 3, Name: models.RoleModerator, Number: 3},
	}
	handler := api.NewRolesHandler(mocks.Roles)

	req := asPrincipal(httptest.NewRequest(http.MethodGet, "/api/roles", nil), 1, models.RolePracownik)
	w := httptest.NewRecorder()
	handler.List(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var roles []models.Role
	decodeBody(t, res, &roles)
	if len(roles) != 3 {
		t.Fatalf("expected 3 roles, got %+v", roles)
	}
	if roles[0].Name != models.RoleAdministrator {
		t.Fatalf("unexpected first role: %+v", roles[0])
	}
}
