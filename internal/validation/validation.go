// Package validation checks request bodies against JSON Schemas and reports
// every failed rule at once as a list of per-field errors.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/qri-io/jsonschema"
)

// FieldError is one failed validation rule, serialized as {"msg","param"}.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Schema names understood by Check.
const (
	SchemaLogin         = "login"
	SchemaRegisterUser  = "registerUser"
	SchemaUpdateUser    = "updateUser"
	SchemaCompany       = "company"
	SchemaUpdateCompany = "updateCompany"
	SchemaIndustry      = "industry"
	SchemaContact       = "contactPerson"
	SchemaUpdateContact = "updateContactPerson"
	SchemaNote          = "note"
	SchemaUpdateNote    = "updateNote"
)

// Patterns are spliced into JSON string literals below, so every regexp
// backslash has to be doubled to survive json.Unmarshal.
const nipPattern = `^[0-9]{10}$`
const mailPattern = `^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$`

var schemaSources = map[string]string{
	SchemaLogin: `{
		"type": "object",
		"required": ["login", "password"],
		"properties": {
			"login": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		}
	}`,
	SchemaRegisterUser: `{
		"type": "object",
		"required": ["login", "password", "name", "surname"],
		"properties": {
			"login": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 8},
			"name": {"type": "string", "minLength": 1},
			"surname": {"type": "string", "minLength": 1},
			"dateOfBirth": {"type": "string"},
			"role": {"type": "string"}
		}
	}`,
	SchemaUpdateUser: `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"surname": {"type": "string", "minLength": 1},
			"dateOfBirth": {"type": "string"},
			"role": {"type": "integer"}
		}
	}`,
	SchemaCompany: `{
		"type": "object",
		"required": ["name", "nip", "city", "industry"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"nip": {"type": "string", "pattern": "` + nipPattern + `"},
			"address": {"type": "string"},
			"city": {"type": "string", "minLength": 1},
			"user": {"type": "integer"},
			"industry": {"type": "integer"}
		}
	}`,
	SchemaUpdateCompany: `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"nip": {"type": "string", "pattern": "` + nipPattern + `"},
			"address": {"type": "string"},
			"city": {"type": "string", "minLength": 1},
			"user": {"type": "integer"},
			"industry": {"type": "integer"}
		}
	}`,
	SchemaIndustry: `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1}
		}
	}`,
	SchemaContact: `{
		"type": "object",
		"required": ["name", "surname", "company"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"surname": {"type": "string", "minLength": 1},
			"phone": {"type": "string", "minLength": 1},
			"mail": {"type": "string", "pattern": "` + mailPattern + `"},
			"position": {"type": "string"},
			"user": {"type": "integer"},
			"company": {"type": "integer"}
		}
	}`,
	SchemaUpdateContact: `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"surname": {"type": "string", "minLength": 1},
			"phone": {"type": "string", "minLength": 1},
			"mail": {"type": "string", "pattern": "` + mailPattern + `"},
			"position": {"type": "string"}
		}
	}`,
	SchemaNote: `{
		"type": "object",
		"required": ["content", "company"],
		"properties": {
			"content": {"type": "string", "minLength": 1},
			"user": {"type": "integer"},
			"company": {"type": "integer"}
		}
	}`,
	SchemaUpdateNote: `{
		"type": "object",
		"required": ["content"],
		"properties": {
			"content": {"type": "string", "minLength": 1}
		}
	}`,
}

var schemas = func() map[string]*jsonschema.Schema {
	out := make(map[string]*jsonschema.Schema, len(schemaSources))
	for name, src := range schemaSources {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(src), rs); err != nil {
			panic(fmt.Sprintf("validation: compile schema %s: %v", name, err))
		}
		out[name] = rs
	}
	return out
}()

// requiredMsg matches the error text the validator emits for a missing
// required property, so the property name can be surfaced as the param.
var requiredMsg = regexp.MustCompile(`"([^"]+)" value is required`)

// Check validates body against the named schema. A non-empty result means the
// request must be rejected with every entry reported; a non-nil error means
// the body was not valid JSON at all.
func Check(ctx context.Context, name string, body []byte) ([]FieldError, error) {
	rs, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return nil, err
	}

	out := make([]FieldError, 0, len(keyErrs))
	for _, ke := range keyErrs {
		out = append(out, FieldError{
			Msg:   ke.Message,
			Param: paramFor(ke.PropertyPath, ke.Message),
		})
	}
	return out, nil
}

func paramFor(path, message string) string {
	if m := requiredMsg.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	p := strings.TrimPrefix(path, "/")
	return p
}
