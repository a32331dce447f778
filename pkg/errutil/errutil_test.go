package errutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[CoreStatus]int{
		StatusUnauthorized:     http.StatusUnauthorized,
		StatusForbidden:        http.StatusForbidden,
		StatusNotFound:         http.StatusNotFound,
		StatusResultPending:    http.StatusConflict,
		StatusConflict:         http.StatusConflict,
		StatusValidationFailed: http.StatusUnprocessableEntity,
		StatusBadGateway:       http.StatusBadGateway,
		StatusInternal:         http.StatusInternalServerError,
		StatusUnknown:          http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, code.HTTPStatus(), string(code))
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := map[CoreStatus]codes.Code{
		StatusUnauthorized:     codes.Unauthenticated,
		StatusForbidden:        codes.PermissionDenied,
		StatusNotFound:         codes.NotFound,
		StatusResultPending:    codes.FailedPrecondition,
		StatusConflict:         codes.AlreadyExists,
		StatusValidationFailed: codes.InvalidArgument,
		StatusBadGateway:       codes.Unavailable,
		StatusInternal:         codes.Internal,
		StatusUnknown:          codes.Unknown,
	}
	for code, want := range cases {
		require.Equal(t, want, code.GRPCCode(), string(code))
	}
}

func TestConstructorsCarryCode(t *testing.T) {
	require.True(t, HasStatus(Unauthorized("nope"), StatusUnauthorized))
	require.True(t, HasStatus(Forbidden("nope"), StatusForbidden))
	require.True(t, HasStatus(NotFound("nope"), StatusNotFound))
	require.True(t, HasStatus(ResultPending("wait"), StatusResultPending))
	require.True(t, HasStatus(ValidationFailed("bad"), StatusValidationFailed))
	require.True(t, HasStatus(Conflict("dup"), StatusConflict))
	require.True(t, HasStatus(ScoringFailed("down"), StatusBadGateway))
	require.False(t, HasStatus(errors.New("plain"), StatusInternal))
}

func TestBaseErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ScoringFailed("scorer unreachable", WithErr(cause))

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "scorer unreachable")
	require.Contains(t, err.Error(), "connection refused")
}

func TestToGRPCError(t *testing.T) {
	err := ToGRPCError(ResultPending("still scoring"))
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	err = ToGRPCError(errors.New("boom"))
	require.Equal(t, codes.Internal, status.Code(err))

	require.NoError(t, ToGRPCError(nil))
}
