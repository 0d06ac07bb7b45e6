package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error

	// Log errors
	CodeLogSaveFailed = "E_LOG_SAVE_FAILED" // the log document could not be written to the log directory
	CodeLogReadFailed = "E_LOG_READ_FAILED" // the log directory could not be listed or read

	// Database errors
	CodeDBInsertFailed = "E_DB_INSERT_FAILED" // a log document could not be inserted
	CodeDBQueryFailed  = "E_DB_QUERY_FAILED"  // a read query failed
	CodeDBDisabled     = "E_DB_DISABLED"      // the server was started without a database

	// Remote errors
	CodeRemoteListingFailed = "E_REMOTE_LISTING_FAILED" // the log dir or the bucket could not be listed
	CodeSyncInProgress      = "E_SYNC_IN_PROGRESS"      // another sync or pull holds the workspace lock
)
