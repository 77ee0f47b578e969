package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("register: %w", Conflict("user already exists"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("store image", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store image: disk full", err.Error())
}

func TestStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindAuthentication: http.StatusBadRequest,
		KindConflict:       http.StatusConflict,
		KindAuthorization:  http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindInternal:       http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, Status(k), string(k))
	}
}

func TestWithDetailsCopies(t *testing.T) {
	base := Validation("invalid payload")
	withDetails := base.WithDetails(map[string]string{"email": "is required"})

	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
	assert.ErrorIs(t, withDetails, ErrValidation)
}
