package errutil

import "net/http"

// CoreStatus is a transport-neutral error classification. Services return
// BaseError values carrying one of these codes; the routing layer maps them
// to HTTP or gRPC without inspecting messages.
type CoreStatus string

const (
	StatusBadRequest       CoreStatus = "BAD_REQUEST"
	StatusValidationFailed CoreStatus = "VALIDATION_FAILED"
	StatusUnauthorized     CoreStatus = "UNAUTHORIZED"
	StatusForbidden        CoreStatus = "FORBIDDEN"
	StatusNotFound         CoreStatus = "NOT_FOUND"
	StatusConflict         CoreStatus = "CONFLICT"
	// StatusResultPending signals that the referenced entity exists but its
	// downstream state has not been reached yet, so callers can poll instead
	// of treating it as absent.
	StatusResultPending CoreStatus = "RESULT_PENDING"
	StatusInternal      CoreStatus = "INTERNAL"
	StatusBadGateway    CoreStatus = "BAD_GATEWAY"
	StatusUnknown       CoreStatus = "UNKNOWN"
)

// HTTPStatus converts the CoreStatus to its closest HTTP status code.
func (s CoreStatus) HTTPStatus() int {
	switch s {
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusValidationFailed:
		return http.StatusUnprocessableEntity
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusForbidden:
		return http.StatusForbidden
	case StatusNotFound:
		return http.StatusNotFound
	case StatusConflict, StatusResultPending:
		return http.StatusConflict
	case StatusBadGateway:
		return http.StatusBadGateway
	case StatusInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
