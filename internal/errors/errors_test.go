package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	var err error = NewNotFoundError("product prd-9 not found")
	assert.Equal(t, "product prd-9 not found", err.Error())

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "product prd-9 not found", nfe.Message)

	nfe, ok = IsNotFoundError(errors.New("connection refused"))
	assert.False(t, ok)
	assert.Nil(t, nfe)
}

func TestValidationError_KeepsDetailsInOrder(t *testing.T) {
	err := NewValidationError("invalid order",
		ValidationDetail{Field: "bakeryName", Message: "bakeryName is required"},
		ValidationDetail{Field: "items[0].quantity", Message: "quantity must be between 1 and 10000"},
	)

	assert.Equal(t, "invalid order", err.Error())
	assert.Equal(t, []ValidationDetail{
		{Field: "bakeryName", Message: "bakeryName is required"},
		{Field: "items[0].quantity", Message: "quantity must be between 1 and 10000"},
	}, err.Details)
}

func TestInternalError(t *testing.T) {
	cause := errors.New("excelize: sheet name too long")
	err := NewInternalError("rendering workbook", cause)

	assert.Equal(t, "rendering workbook: excelize: sheet name too long", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewInternalError("rendering workbook", nil)
	assert.Equal(t, "rendering workbook", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading order: %w", NewNotFoundError("order ord-1 not found"))

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order ord-1 not found", nfe.Message)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := NewValidationError("invalid status", ValidationDetail{Field: "status", Message: "unknown status"})

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "status", ve.Details[0].Field)

	_, ok = IsValidationError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConflictError(t *testing.T) {
	var err error = NewConflictError("order cannot move from DELIVERED to PENDING")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "order cannot move from DELIVERED to PENDING", ce.Error())

	_, ok = IsForbiddenError(err)
	assert.False(t, ok)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("role not allowed")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "role not allowed", fe.Error())
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("session expired")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "session expired", ue.Error())
}

func TestUpstreamError(t *testing.T) {
	err := fmt.Errorf("listing orders: %w", NewUpstreamError(502, "bad gateway"))

	ue, ok := IsUpstreamError(err)
	assert.True(t, ok)
	assert.Equal(t, 502, ue.StatusCode)
	assert.Equal(t, "upstream responded 502: bad gateway", ue.Error())
}
