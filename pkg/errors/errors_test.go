package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeSourceNotFound, "pathway file not found")
	assert.Equal(t, "[CPL_001] pathway file not found", err.Error())

	withDetail := err.WithDetail("path=/data/pathways.csv")
	assert.Equal(t, "[CPL_001] pathway file not found: path=/data/pathways.csv", withDetail.Error())
	// Original untouched.
	assert.Empty(t, err.Detail)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeDatabaseError, "query failed"))

	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeDatabaseError, "rule score query failed")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeDatabaseError, err.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeInvalidPathwayID, "non-integer pathway id")
	outer := fmt.Errorf("reading source: %w", inner)

	assert.True(t, IsCode(outer, ErrCodeInvalidPathwayID))
	assert.False(t, IsCode(outer, ErrCodeSourceEmpty))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.Equal(t, ErrCodeValidation, GetCode(Validation("bad")))
	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
}

func TestWithDetail_NilReceiver(t *testing.T) {
	var e *AppError
	assert.Nil(t, e.WithDetail("anything"))
}
