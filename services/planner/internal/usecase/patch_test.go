package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"some-planner/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestPatchSpec_PostFields(t *testing.T) {
	fields, err := postPatch.build(decode(t, `{
		"date": "2025-06-15",
		"type": "reel",
		"status": "ready",
		"shop_id": 3,
		"format": "",
		"caption": "Summer sale",
		"notes": null,
		"id": 10,
		"created_at": "2020-01-01"
	}`))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), fields["date"])
	assert.Equal(t, "reel", fields["type"])
	assert.Equal(t, "ready", fields["status"])
	assert.Equal(t, int64(3), fields["shop_id"])
	assert.Contains(t, fields, "format")
	assert.Nil(t, fields["format"])
	assert.Equal(t, "Summer sale", fields["caption"])
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "created_at")
}

func TestPatchSpec_NoFields(t *testing.T) {
	for _, body := range []string{`{}`, `{"notes": null}`, `{"unknown": 1}`} {
		_, err := postPatch.build(decode(t, body))
		require.Error(t, err, body)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.Equal(t, "No fields to update", apperr.As(err).Message)
	}
}

func TestPatchSpec_InvalidValues(t *testing.T) {
	_, err := postPatch.build(decode(t, `{"date": "15/06/2025", "type": "story", "status": "done", "shop_id": -1}`))
	require.Error(t, err)

	e := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "Date must be in YYYY-MM-DD format", e.Fields["date"])
	assert.Equal(t, "Type must be one of: post, reel", e.Fields["type"])
	assert.Equal(t, "Status must be one of: draft, ready, published", e.Fields["status"])
	assert.Equal(t, "Shop must be a positive integer", e.Fields["shop_id"])
}

func TestPatchSpec_ShopFields(t *testing.T) {
	fields, err := shopPatch.build(decode(t, `{"contact_email": "", "active": 0, "contact_phone": "+1 555"}`))
	require.NoError(t, err)
	assert.Nil(t, fields["contact_email"])
	assert.Equal(t, false, fields["active"])
	assert.Equal(t, "+1 555", fields["contact_phone"])

	_, err = shopPatch.build(decode(t, `{"name": "", "contact_email": "not-an-email", "active": "maybe"}`))
	e := apperr.As(err)
	require.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "Shop name is required", e.Fields["name"])
	assert.Equal(t, "Contact email must be a valid email address", e.Fields["contact_email"])
	assert.Equal(t, "Active must be a boolean", e.Fields["active"])
}

func TestPatchSpec_TemplateFields(t *testing.T) {
	fields, err := templatePatch.build(decode(t, `{"name": "Promo", "media_guide": "3 photos", "active": true}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Promo", "media_guide": "3 photos", "active": true}, fields)
}

func TestOptionalID(t *testing.T) {
	cases := []struct {
		in   interface{}
		want interface{}
		ok   bool
	}{
		{json.Number("7"), int64(7), true},
		{float64(7), int64(7), true},
		{"7", int64(7), true},
		{"", nil, true},
		{float64(1.5), nil, false},
		{"abc", nil, false},
		{json.Number("0"), nil, false},
		{true, nil, false},
	}
	for _, tc := range cases {
		got, msg := optionalID("Shop", tc.in)
		assert.Equal(t, tc.ok, msg == "", "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}
