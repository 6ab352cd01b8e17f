package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"

	// Log sink errors
	ErrOpenLogSink  ErrorCode = "log_sink_open_failed"
	ErrCloseLogSink ErrorCode = "log_sink_close_failed"
	ErrOpenSyslog   ErrorCode = "syslog_open_failed"

	// Watch errors
	ErrWatchInit ErrorCode = "watch_init_failed"
	ErrWatchAdd  ErrorCode = "watch_add_failed"

	// Sampler errors
	ErrReadUptime   ErrorCode = "read_uptime_failed"
	ErrReadInodes   ErrorCode = "read_inodes_failed"
	ErrReadTCPTable ErrorCode = "read_tcp_table_failed"

	// Application errors
	ErrInitApp  ErrorCode = "init_app_failed"
	ErrMainLoop ErrorCode = "main_loop_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Service unavailable",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidInterval: "Invalid interval value",
	ErrOpenLogSink:     "Failed to open log sink",
	ErrCloseLogSink:    "Failed to close log sink",
	ErrOpenSyslog:      "Failed to connect to syslog",
	ErrWatchInit:       "Failed to initialize directory monitoring",
	ErrWatchAdd:        "Failed to register directory watch",
	ErrReadUptime:      "Failed to read system uptime",
	ErrReadInodes:      "Failed to read filesystem statistics",
	ErrReadTCPTable:    "Failed to read TCP connection table",
	ErrInitApp:         "Failed to initialize application",
	ErrMainLoop:        "Error in main loop",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
