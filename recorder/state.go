package recorder

// Mode is the session state visible to the user. Exactly one is active at
// any instant; it is derived from the controller's flags, never stored.
type Mode int

const (
	// ModeRecording means audio is being captured.
	ModeRecording Mode = iota
	// ModeRecordingPaused means capture is open but emitting silence.
	ModeRecordingPaused
	// ModePreviewPlaying means a preview of the buffer is playing back.
	ModePreviewPlaying
	// ModePreviewPaused means the preview is suspended.
	ModePreviewPaused
)

// String returns the mode's display name.
func (m Mode) String() string {
	switch m {
	case ModeRecording:
		return "recording"
	case ModeRecordingPaused:
		return "recording paused"
	case ModePreviewPlaying:
		return "listening to preview"
	case ModePreviewPaused:
		return "preview paused"
	default:
		return "unknown"
	}
}

// DeriveMode maps the three session flags to a mode. Priority order, first
// match wins: an active-and-paused preview, an active preview, a paused
// recording, then recording.
func DeriveMode(paused, previewActive, previewPaused bool) Mode {
	switch {
	case previewActive && previewPaused:
		return ModePreviewPaused
	case previewActive:
		return ModePreviewPlaying
	case paused:
		return ModeRecordingPaused
	default:
		return ModeRecording
	}
}

// Previewing reports whether the mode is one of the preview states.
func (m Mode) Previewing() bool {
	return m == ModePreviewPlaying || m == ModePreviewPaused
}
