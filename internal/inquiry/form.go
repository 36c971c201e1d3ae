package inquiry

import (
	"net/mail"
	"net/url"
	"sort"
	"strings"
)

// Industries are the options offered by the industry select, in display order.
var Industries = []string{
	"Education (K-12)",
	"Higher Education",
	"Enterprise / Corporate",
	"Retail",
	"Healthcare",
	"Government",
	"Hospitality",
	"Other",
}

// Form field names, shared by the HTML form and validation errors.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldCompany  = "company"
	FieldPhone    = "phone"
	FieldIndustry = "industry"
	FieldMessage  = "message"
)

// Form holds the contact fields a visitor fills in. Phone is optional.
type Form struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone,omitempty"`
	Industry string `json:"industry"`
	Message  string `json:"message"`
}

// FormFromValues reads a form from posted values, trimming surrounding whitespace.
func FormFromValues(v url.Values) Form {
	get := func(key string) string { return strings.TrimSpace(v.Get(key)) }
	return Form{
		Name:     get(FieldName),
		Email:    get(FieldEmail),
		Company:  get(FieldCompany),
		Phone:    get(FieldPhone),
		Industry: get(FieldIndustry),
		Message:  get(FieldMessage),
	}
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	return f == Form{}
}

// Validate checks required fields and returns a *ValidationError listing every problem.
func (f Form) Validate() error {
	verr := &ValidationError{fields: map[string]string{}}
	required := []struct{ field, value string }{
		{FieldName, f.Name},
		{FieldEmail, f.Email},
		{FieldCompany, f.Company},
		{FieldIndustry, f.Industry},
		{FieldMessage, f.Message},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.fields[r.field] = "required"
		}
	}
	if _, missing := verr.fields[FieldEmail]; !missing {
		if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
			verr.fields[FieldEmail] = "invalid"
		}
	}
	if _, missing := verr.fields[FieldIndustry]; !missing && !isIndustry(f.Industry) {
		verr.fields[FieldIndustry] = "invalid"
	}
	if len(verr.fields) > 0 {
		return verr
	}
	return nil
}

func isIndustry(v string) bool {
	for _, item := range Industries {
		if item == v {
			return true
		}
	}
	return false
}

// ValidationError maps field names to a short reason code ("required" or "invalid").
type ValidationError struct {
	fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.fields) == 0 {
		return "inquiry: invalid form"
	}
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.Fields() {
		parts = append(parts, f+" "+e.fields[f])
	}
	return "inquiry: invalid form: " + strings.Join(parts, ", ")
}

// Fields returns the failing field names in sorted order.
func (e *ValidationError) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.fields))
	for f := range e.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Reason returns the reason code for field, or "" when the field is valid.
func (e *ValidationError) Reason(field string) string {
	if e == nil {
		return ""
	}
	return e.fields[field]
}

// Map returns a copy of the field to reason mapping.
func (e *ValidationError) Map() map[string]string {
	if e == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}
