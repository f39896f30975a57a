package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindMissingField, KindOf(MissingField("title")))
	assert.Equal(t, KindInvalidValue, KindOf(InvalidValue("status", "bad")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindConflict, KindOf(Conflict("clash")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("list incidents: %w", Forbidden("supervisor role required"))
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestErrorStringIncludesField(t *testing.T) {
	assert.Equal(t, "MISSING_FIELD: title: required field is missing or empty",
		MissingField("title").Error())
	assert.Equal(t, "NOT_FOUND: assignment not found", NotFound("assignment not found").Error())
}
