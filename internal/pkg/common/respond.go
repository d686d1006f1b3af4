package common

import "net/http"

// MapError translates any error into an HTTP status and JSON error
// envelope. Internal error detail only leaks into Details when
// includeDetails is set (non-production).
func MapError(err error, includeDetails bool) (int, ErrorResponse) {
	if IsValidationError(err) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: err.Error(),
		}
	}

	if ce, ok := AsCustomError(err); ok {
		resp := ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		}
		if includeDetails && ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return ce.Status, resp
	}

	resp := ErrorResponse{
		Code:    ErrCodeInternalError,
		Message: "internal server error",
	}
	if includeDetails {
		resp.Details = err.Error()
	}
	return http.StatusInternalServerError, resp
}
