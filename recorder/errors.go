package recorder

import "errors"

// Common errors for the recording session. All of these are handled at the
// point of occurrence and surfaced to the user; none terminate the process.
var (
	// ErrDeviceUnavailable wraps an audio device that cannot be opened.
	// Fatal to the session on the capture side, recoverable on the
	// preview side.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrInvalidCommand means the keypress is not legal in the current
	// mode. No state changes; the user gets a corrective hint.
	ErrInvalidCommand = errors.New("command not valid in current mode")

	// ErrBufferEmpty means a preview was requested with zero captured
	// chunks. A silent no-op.
	ErrBufferEmpty = errors.New("nothing captured yet")

	// ErrSessionFinished means the controller already produced an outcome.
	ErrSessionFinished = errors.New("session already finished")
)
