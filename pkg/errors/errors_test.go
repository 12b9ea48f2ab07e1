package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodePayment, status: http.StatusBadGateway, publicMsg: "payment initiation failed", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		assert.Equal(t, tt.status, meta.HTTPStatus, "code %s", tt.code)
		assert.Equal(t, tt.publicMsg, meta.PublicMessage, "code %s", tt.code)
		assert.Equal(t, tt.retryable, meta.Retryable, "code %s", tt.code)
		assert.Equal(t, tt.detailsOK, meta.DetailsAllowed, "code %s", tt.code)
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing address")
	require.Equal(t, CodeValidation, base.Code())
	require.Equal(t, "missing address", base.Message())
	require.Nil(t, base.Details())

	base.WithDetails(map[string]any{"field": "address_id"})
	assert.NotNil(t, base.Details())

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "ctx")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, CodeDependency, wrapped.Code())
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodePayment, "no redirect url")
	got := As(err)
	require.NotNil(t, got)
	assert.Equal(t, CodePayment, got.Code())
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "routing lookup")

	d := Dump(err)
	require.Equal(t, CodeDependency, d.Code)
	require.Len(t, d.Chain, 2)
}
