package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type listingPayload struct {
	Title string  `json:"title" binding:"required,max=5"`
	Price float64 `json:"price" binding:"gt=0"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(loginPayload{Email: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestToDetailsSizeMessages(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(listingPayload{Title: "Seaside villa", Price: 0})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be at most 5 characters long", details["title"])
	assert.Equal(t, "must be greater than 0", details["price"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}

type datePayload struct {
	Start string `json:"startDate" binding:"required,isodate"`
}

func TestISODate(t *testing.T) {
	Init()

	for _, ok := range []string{"2024-01-05", "2024-01-05T10:00:00Z", "2024-01-05T10:00:00+02:00"} {
		assert.NoError(t, binding.Validator.ValidateStruct(datePayload{Start: ok}), ok)
	}
	for _, bad := range []string{"2024-13-45", "Jan 5 2024", "05/01/2024xx"} {
		err := binding.Validator.ValidateStruct(datePayload{Start: bad})
		require.Error(t, err, bad)
		assert.Equal(t, "must be a date (YYYY-MM-DD or RFC 3339)", ToDetails(err)["startDate"])
	}
}
