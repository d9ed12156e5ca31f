package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"some-planner/pkg/apperr"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/repo/persistent"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// convertFunc turns a decoded JSON value into a column value, or returns a
// message for the client.
type convertFunc func(label string, value interface{}) (interface{}, string)

type patchField struct {
	column  string
	label   string
	convert convertFunc
}

// patchSpec maps accepted JSON keys to fixed column names. Nothing from the
// request body reaches SQL as an identifier.
type patchSpec map[string]patchField

var shopPatch = patchSpec{
	"name":          {"name", "Shop name", requiredText},
	"contact_name":  {"contact_name", "Contact name", optionalText},
	"contact_email": {"contact_email", "Contact email", optionalEmail},
	"contact_phone": {"contact_phone", "Contact phone", optionalText},
	"active":        {"active", "Active", boolFlag},
}

var templatePatch = patchSpec{
	"name":             {"name", "Template name", requiredText},
	"caption_template": {"caption_template", "Caption template", optionalText},
	"media_guide":      {"media_guide", "Media guide", optionalText},
	"active":           {"active", "Active", boolFlag},
}

var postPatch = patchSpec{
	"date":    {"date", "Date", calendarDate},
	"type":    {"type", "Type", oneOf(string(entity.PostTypePost), string(entity.PostTypeReel))},
	"format":  {"format", "Format", optionalText},
	"shop_id": {"shop_id", "Shop", optionalID},
	"status":  {"status", "Status", oneOf(string(entity.StatusDraft), string(entity.StatusReady), string(entity.StatusPublished))},
	"caption": {"caption", "Caption", optionalText},
	"notes":   {"notes", "Notes", optionalText},
}

// build converts the recognized keys of raw. JSON null counts as absent.
func (s patchSpec) build(raw map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	problems := make(map[string]string)

	for key, value := range raw {
		f, ok := s[key]
		if !ok || value == nil {
			continue
		}
		converted, msg := f.convert(f.label, value)
		if msg != "" {
			problems[key] = msg
			continue
		}
		fields[f.column] = converted
	}

	if len(problems) > 0 {
		return nil, apperr.Validation(problems)
	}
	if len(fields) == 0 {
		return nil, apperr.BadRequest("No fields to update")
	}
	return fields, nil
}

func requiredText(label string, value interface{}) (interface{}, string) {
	s, ok := value.(string)
	if !ok {
		return nil, label + " must be a string"
	}
	if strings.TrimSpace(s) == "" {
		return nil, label + " is required"
	}
	return s, ""
}

// optionalText stores NULL for the empty string.
func optionalText(label string, value interface{}) (interface{}, string) {
	s, ok := value.(string)
	if !ok {
		return nil, label + " must be a string"
	}
	if s == "" {
		return nil, ""
	}
	return s, ""
}

func optionalEmail(label string, value interface{}) (interface{}, string) {
	v, msg := optionalText(label, value)
	if msg != "" || v == nil {
		return v, msg
	}
	if err := validate.Var(v, "email"); err != nil {
		return nil, label + " must be a valid email address"
	}
	return v, ""
}

func calendarDate(label string, value interface{}) (interface{}, string) {
	s, ok := value.(string)
	if !ok {
		return nil, label + " must be in YYYY-MM-DD format"
	}
	if s == "" {
		return nil, label + " is required"
	}
	t, err := persistent.ParseDate(s)
	if err != nil {
		return nil, label + " must be in YYYY-MM-DD format"
	}
	return t, ""
}

func oneOf(allowed ...string) convertFunc {
	return func(label string, value interface{}) (interface{}, string) {
		s, _ := value.(string)
		for _, a := range allowed {
			if s == a {
				return s, ""
			}
		}
		return nil, fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", "))
	}
}

// optionalID accepts a positive integer as number or numeric string. The
// empty string clears the reference.
func optionalID(label string, value interface{}) (interface{}, string) {
	var (
		id  int64
		err error
	)
	switch v := value.(type) {
	case json.Number:
		id, err = v.Int64()
	case float64:
		id = int64(v)
		if float64(id) != v {
			err = fmt.Errorf("not an integer")
		}
	case string:
		if v == "" {
			return nil, ""
		}
		id, err = strconv.ParseInt(v, 10, 64)
	default:
		err = fmt.Errorf("unsupported type %T", value)
	}
	if err != nil || id <= 0 {
		return nil, label + " must be a positive integer"
	}
	return id, ""
}

// boolFlag accepts true/false, 0/1 and their string forms.
func boolFlag(label string, value interface{}) (interface{}, string) {
	switch v := value.(type) {
	case bool:
		return v, ""
	case json.Number:
		switch v.String() {
		case "0":
			return false, ""
		case "1":
			return true, ""
		}
	case float64:
		switch v {
		case 0:
			return false, ""
		case 1:
			return true, ""
		}
	case string:
		switch v {
		case "0", "false":
			return false, ""
		case "1", "true":
			return true, ""
		}
	}
	return nil, label + " must be a boolean"
}
