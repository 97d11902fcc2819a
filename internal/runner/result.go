package runner

// ErrorKind classifies why a run failed. Every failure a run can
// produce is mapped to exactly one kind; nothing escapes as a panic.
type ErrorKind string

const (
	KindFileNotFound       ErrorKind = "file_not_found"
	KindLaunchFailure      ErrorKind = "launch_failure"
	KindServerNeverBound   ErrorKind = "server_never_bound"
	KindServerStartTimeout ErrorKind = "server_start_timeout"
	KindCrashDetected      ErrorKind = "crash_detected"
	KindUnexpectedExit     ErrorKind = "unexpected_exit"
	KindTimeout            ErrorKind = "timeout"
	KindRunException       ErrorKind = "run_exception"
)

// Result is the single record returned per run. It is immutable once
// returned.
type Result struct {
	Success        bool      `json:"success"`
	Kind           ErrorKind `json:"kind,omitempty"`
	Err            string    `json:"error,omitempty"`
	Stdout         string    `json:"stdout,omitempty"`
	Stderr         string    `json:"stderr,omitempty"`
	ReturnCode     *int      `json:"return_code,omitempty"`
	DiagnosticTail string    `json:"diagnostic_tail,omitempty"`
	EntryFile      string    `json:"entry_file,omitempty"`
	URL            string    `json:"url,omitempty"`
}

func failure(kind ErrorKind, errText string) *Result {
	return &Result{Success: false, Kind: kind, Err: errText}
}
