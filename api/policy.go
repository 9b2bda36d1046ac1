package api

import (
	"encoding/json"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
)

// fieldRule restricts who may set a field in an update request. A nil Roles
// list means nobody may set the field at all.
type fieldRule struct {
	Field string
	Roles []string
	Msg   string
}

// userUpdateRules is the whole authorization-by-field policy: every
// role-sensitive field lives here instead of inside handler bodies.
var userUpdateRules = []fieldRule{
	{Field: "login", Roles: nil, Msg: "login cannot be changed"},
	{Field: "password", Roles: nil, Msg: "password cannot be changed"},
	{Field: "role", Roles: []string{models.RoleAdministrator}, Msg: "only an administrator may change roles"},
}

// checkFieldPolicy evaluates rules against the fields present in a raw update
// body. Fields nobody may set come back as validation errors (400); fields
// the acting role may not set come back as forbidden messages (403).
func checkFieldPolicy(rules []fieldRule, body map[string]json.RawMessage, role string) (denied []validation.FieldError, forbidden []string) {
	for _, rule := range rules {
		if _, present := body[rule.Field]; !present {
			continue
		}
		if rule.Roles == nil {
			denied = append(denied, validation.FieldError{Msg: rule.Msg, Param: rule.Field})
			continue
		}
		allowed := false
		for _, a := range rule.Roles {
			if role == a {
				allowed = true
				break
			}
		}
		if !allowed {
			forbidden = append(forbidden, rule.Msg)
		}
	}
	return denied, forbidden
}
