package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesDerivedCopies(t *testing.T) {
	sentinel := NewValidation("incomplete_item", "some items are incomplete", nil)

	derived := sentinel.WithFields(map[string]string{"items[0].dosage": "dosage is required"})
	wrapped := fmt.Errorf("submit prescription: %w", derived)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, NewValidation("empty_prescription", "", nil)))
	assert.Nil(t, sentinel.Fields)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewNotFound("appointment_not_found", "appointment not found")))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("load: %w", NewForbidden("forbidden", "no access"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestFieldsOf(t *testing.T) {
	err := NewServerRejected("invalid_items", "items rejected", map[string]string{"items[1].medicine_id": "unknown medicine"})

	assert.Equal(t, "unknown medicine", FieldsOf(err)["items[1].medicine_id"])
	assert.Nil(t, FieldsOf(errors.New("plain")))
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := NewUnreachable("appointment service unreachable", errors.New("dial tcp: timeout"))

	assert.Equal(t, "unreachable: appointment service unreachable (caused by: dial tcp: timeout)", err.Error())
	assert.Equal(t, "dial tcp: timeout", errors.Unwrap(err).Error())
}
