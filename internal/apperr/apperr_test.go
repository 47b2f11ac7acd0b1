package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("Asset not found")))
	assert.Equal(t, KindInvalidState, KindOf(InvalidStatef("Asset %s is %s", "22-000001-GC", "Sold")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindTimeout, KindOf(context.DeadlineExceeded))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout failed: %w", InvalidStatef("Asset is not checked out"))
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(New(KindUnavailable, "pool exhausted")))
	assert.True(t, IsTransient(New(KindTimeout, "deadline")))
	assert.True(t, IsTransient(errors.New("dial tcp: connection refused")))
	assert.False(t, IsTransient(BadRequestf("Checkout date is required")))
	assert.False(t, IsTransient(NotFoundf("Asset not found")))
	assert.False(t, IsTransient(nil))
}

func TestFromStorage(t *testing.T) {
	// kinded errors pass through
	orig := InvalidStatef("already disposed")
	assert.Equal(t, orig, FromStorage(orig))

	classified := FromStorage(errors.New("read tcp: i/o timeout"))
	assert.Equal(t, KindUnavailable, KindOf(classified))

	classified = FromStorage(context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, KindOf(classified))

	classified = FromStorage(errors.New("syntax error"))
	assert.Equal(t, KindInternal, KindOf(classified))

	assert.Nil(t, FromStorage(nil))
}

func TestBadRequestDetails(t *testing.T) {
	err := BadRequest("Validation failed", map[string]string{"checkoutDate": "required"})
	assert.Equal(t, "required", err.Details["checkoutDate"])
	assert.Equal(t, KindBadRequest, err.Kind)
}
