package errors

// ErrorCode is the stable application error code returned to API clients
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3002
	ErrorCode_AI_NO_MODEL_AVAILABLE   ErrorCode = 3003
	ErrorCode_AI_EMPTY_MEETING_TEXT   ErrorCode = 3004

	ErrorCode_MEETING_NOT_FOUND ErrorCode = 4000

	ErrorCode_REPORT_NOT_FOUND         ErrorCode = 5000
	ErrorCode_REPORT_GENERATION_FAILED ErrorCode = 5001
	ErrorCode_REPORT_EXPORT_FAILED     ErrorCode = 5002

	ErrorCode_TASK_STORE_FAILED         ErrorCode = 6000
	ErrorCode_TASK_STORE_NOT_CONFIGURED ErrorCode = 6001

	ErrorCode_NOTIFICATION_FAILED ErrorCode = 7000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_FORBIDDEN:                 "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_AI_ANALYSIS_FAILED:        "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:   "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:    "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_NO_MODEL_AVAILABLE:     "AI_NO_MODEL_AVAILABLE",
	ErrorCode_AI_EMPTY_MEETING_TEXT:     "AI_EMPTY_MEETING_TEXT",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
	ErrorCode_REPORT_NOT_FOUND:          "REPORT_NOT_FOUND",
	ErrorCode_REPORT_GENERATION_FAILED:  "REPORT_GENERATION_FAILED",
	ErrorCode_REPORT_EXPORT_FAILED:      "REPORT_EXPORT_FAILED",
	ErrorCode_TASK_STORE_FAILED:         "TASK_STORE_FAILED",
	ErrorCode_TASK_STORE_NOT_CONFIGURED: "TASK_STORE_NOT_CONFIGURED",
	ErrorCode_NOTIFICATION_FAILED:       "NOTIFICATION_FAILED",
}

// String returns the code name
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
