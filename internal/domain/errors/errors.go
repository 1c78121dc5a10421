package errors

import (
	"net/http"

	"gachigage/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is reports whether target is a BaseError with the same error code, so the
// copies produced by WithDetails still match their sentinel via errors.Is.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// RegionChangeCooldownMessage is the exact message the backend returns when a
// region change is attempted within two months of the previous one. The client
// detects the cooldown by substring match on this text.
const RegionChangeCooldownMessage = "지역 변경 후에는 2개월 간 지역변경을 할 수 없습니다"

// Predefined error types
var (
	// Authentication and session errors
	ErrAuthRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_REQUIRED",
		"로그인이 필요합니다.",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"세션이 만료되었습니다. 다시 로그인해 주세요.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"아이디 또는 비밀번호가 올바르지 않습니다.",
		"",
	)

	ErrIdentifierTaken = NewBaseError(
		http.StatusConflict,
		"IDENTIFIER_TAKEN",
		"이미 사용 중인 아이디입니다.",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"입력값이 올바르지 않습니다.",
		"",
	)

	ErrIdentifierInvalid = NewBaseError(
		http.StatusBadRequest,
		"IDENTIFIER_INVALID",
		"아이디는 6~12자의 영문 또는 숫자여야 합니다.",
		"",
	)

	ErrPasswordInvalid = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_INVALID",
		"비밀번호는 6~12자여야 합니다.",
		"",
	)

	ErrNicknameInvalid = NewBaseError(
		http.StatusBadRequest,
		"NICKNAME_INVALID",
		"닉네임은 1자 이상 15자 이하여야 합니다.",
		"",
	)

	// Profile errors
	ErrRegionChangeCooldown = NewBaseError(
		http.StatusConflict,
		"REGION_CHANGE_COOLDOWN",
		RegionChangeCooldownMessage,
		"",
	)

	// Recommendation errors
	ErrWizardStateInvalid = NewBaseError(
		http.StatusConflict,
		"WIZARD_STATE_INVALID",
		"추천 단계가 올바르지 않습니다.",
		"",
	)

	ErrMoodLimitExceeded = NewBaseError(
		http.StatusBadRequest,
		"MOOD_LIMIT_EXCEEDED",
		"분위기 태그는 최대 3개까지 선택할 수 있습니다.",
		"",
	)

	ErrRecommendationEmpty = NewBaseError(
		http.StatusNotFound,
		"RECOMMENDATION_EMPTY",
		"조건에 맞는 가게를 찾지 못했습니다.",
		"",
	)

	ErrRecommendationCacheEmpty = NewBaseError(
		http.StatusConflict,
		"RECOMMENDATION_CACHE_EMPTY",
		"다시 추천받을 요청이 없습니다.",
		"",
	)

	// Mission and receipt errors
	ErrMissionNotFound = NewBaseError(
		http.StatusNotFound,
		"MISSION_NOT_FOUND",
		"해당 미션을 찾을 수 없습니다.",
		"",
	)

	ErrReceiptStateInvalid = NewBaseError(
		http.StatusConflict,
		"RECEIPT_STATE_INVALID",
		"영수증 인증 단계가 올바르지 않습니다.",
		"",
	)

	ErrReceiptUnmodified = NewBaseError(
		http.StatusBadRequest,
		"RECEIPT_UNMODIFIED",
		"인식된 내용을 확인하고 수정해 주세요.",
		"",
	)

	ErrRecognitionFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"RECOGNITION_FAILED",
		"영수증을 인식하지 못했습니다. 다시 촬영해 주세요.",
		"",
	)

	// Review errors
	ErrReviewTagLimit = NewBaseError(
		http.StatusBadRequest,
		"REVIEW_TAG_LIMIT",
		"태그는 최대 4개까지 선택할 수 있습니다.",
		"",
	)

	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"해당 리뷰를 찾을 수 없습니다.",
		"",
	)

	// Coupon errors
	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"해당 쿠폰을 찾을 수 없습니다.",
		"",
	)

	// Upstream transport errors
	ErrUpstreamUnavailable = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_UNAVAILABLE",
		"서버와 통신할 수 없습니다. 잠시 후 다시 시도해 주세요.",
		"",
	)

	ErrUpstreamTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"UPSTREAM_TIMEOUT",
		"요청 시간이 초과되었습니다.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"일시적인 오류가 발생했습니다.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"접근 권한이 없습니다.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"요청한 리소스를 찾을 수 없습니다.",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"요청이 현재 상태와 충돌합니다.",
		"",
	)
)

// UpstreamError represents a non-2xx response from the remote backend,
// implementing the AppError interface. The upstream message is preserved so
// callers can branch on server-side texts (the region-change cooldown is
// detected this way).
type UpstreamError struct {
	status  int
	message string
}

// NewUpstreamError creates an upstream response error
func NewUpstreamError(status int, message string) *UpstreamError {
	return &UpstreamError{
		status:  status,
		message: message,
	}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code relayed from the upstream
func (e *UpstreamError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_ERROR"
}

// Message returns the upstream-provided error message
func (e *UpstreamError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *UpstreamError) Details() string {
	return ""
}

// DatabaseExecuteError represents a local store execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "로컬 저장소 처리에 실패했습니다."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
