package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"some-planner/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report validation failures under their JSON names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Flag is a boolean that also accepts 0/1 and their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
	case "true", "1", `"1"`, `"true"`:
		*f = true
	case "false", "0", `"0"`, `"false"`:
		*f = false
	default:
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(true)}
	}
	return nil
}

// flagOr returns the flag value, def when absent.
func flagOr(f *Flag, def bool) bool {
	if f == nil {
		return def
	}
	return bool(*f)
}

// OptionalID is a reference id sent as number or numeric string. Empty
// string and null mean no reference.
type OptionalID struct {
	Value *int64
}

func (i *OptionalID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		i.Value = nil
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(int64(0))}
	}
	i.Value = &n
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperr.BadRequest("Could not read request body")
	}
	return body, nil
}

// bindJSON decodes the body into req and validates its binding tags. An
// empty body is validated as {}. labels names fields in messages.
func bindJSON(c *gin.Context, req interface{}, labels map[string]string) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	err = binding.JSON.BindBody(body, req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe, label(labels, fe.Field()))
		}
		return apperr.Validation(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation(map[string]string{
			typeErr.Field: label(labels, typeErr.Field) + " is invalid",
		})
	}
	return apperr.BadRequest("Invalid JSON body")
}

// readJSONMap decodes a JSON object body keeping numbers as json.Number.
// An empty body yields an empty map.
func readJSONMap(c *gin.Context) (map[string]interface{}, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]interface{})
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, apperr.BadRequest("Invalid JSON body")
	}
	return raw, nil
}

func fieldMessage(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return label + " must be in YYYY-MM-DD format"
	case "email":
		return label + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

func label(labels map[string]string, field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	l := strings.ReplaceAll(field, "_", " ")
	if l == "" {
		return "Value"
	}
	return strings.ToUpper(l[:1]) + l[1:]
}

// resourceID finds the target id in the path, then the JSON body, then the
// query string.
func resourceID(c *gin.Context, body map[string]interface{}, resource string) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		if v, ok := body["id"]; ok && v != nil {
			raw = fmt.Sprint(v)
		}
	}
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		return 0, apperr.BadRequest(resource + " ID is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid " + strings.ToLower(resource) + " ID")
	}
	return id, nil
}
