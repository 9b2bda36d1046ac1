package api

import (
	"net/http"

	"github.com/webert/crm/pkg/repository"
)

type RolesHandler struct {
	roleRepo repository.RoleRepo
}

func NewRolesHandler(rr repository.RoleRepo) *RolesHandler {
	return &RolesHandler{roleRepo: rr}
}

// List returns every role. Roles are a fixed seeded set, so there is no
// filtering or pagination.
func (h *RolesHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleRepo.ListRoles(r.Context())
	if err != nil {
		writeServerError(w, "list roles", err)
		return
	}

	writeJSON(w, roles, http.StatusOK)
}
