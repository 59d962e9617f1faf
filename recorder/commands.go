package recorder

// Command is a user action during a session. Keys are normalized to lower
// case by the poller before parsing.
type Command int

const (
	// CmdNone means no pending input this tick.
	CmdNone Command = iota
	// CmdPauseResume toggles the recording pause ('p').
	CmdPauseResume
	// CmdListen starts a preview of the captured buffer ('l').
	CmdListen
	// CmdSave stops and persists the recording, or stops an active
	// preview ('s').
	CmdSave
	// CmdDiscard throws the recording away after confirmation ('d').
	CmdDiscard
	// CmdSpace toggles preview pause (space bar).
	CmdSpace
)

// ParseKey maps a keypress to a command. Unrecognized keys are CmdNone.
func ParseKey(r rune) Command {
	switch r {
	case 'p', 'P':
		return CmdPauseResume
	case 'l', 'L':
		return CmdListen
	case 's', 'S':
		return CmdSave
	case 'd', 'D':
		return CmdDiscard
	case ' ':
		return CmdSpace
	default:
		return CmdNone
	}
}
