package fritzbox

import "fmt"

// ConnectionState is the router-reported lifecycle state of the WAN link.
type ConnectionState int

const (
	// StateOther covers any status string outside the known set. Newer
	// firmware may report values this client does not know about.
	StateOther ConnectionState = iota
	StateConnected
	StateConnecting
	StateDisconnected
	StateDisconnecting
	StatePendingDisconnect
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateConnecting:
		return "Connecting"
	case StateDisconnected:
		return "Disconnected"
	case StateDisconnecting:
		return "Disconnecting"
	case StatePendingDisconnect:
		return "PendingDisconnect"
	default:
		return "Other"
	}
}

// ConnectionStatus pairs the decoded state with the raw string the router
// reported, so unrecognized firmware values stay visible in diagnostics.
type ConnectionStatus struct {
	State ConnectionState
	Raw   string
}

func (s ConnectionStatus) String() string {
	if s.State == StateOther && s.Raw != "" {
		return fmt.Sprintf("Other(%q)", s.Raw)
	}
	return s.State.String()
}

// ParseConnectionStatus maps a literal status string to a ConnectionStatus.
// Matching is exact and case-sensitive; anything outside the five known
// values decodes as StateOther with the original text preserved.
func ParseConnectionStatus(raw string) ConnectionStatus {
	status := ConnectionStatus{Raw: raw}
	switch raw {
	case "Connected":
		status.State = StateConnected
	case "Connecting":
		status.State = StateConnecting
	case "Disconnected":
		status.State = StateDisconnected
	case "Disconnecting":
		status.State = StateDisconnecting
	case "PendingDisconnect":
		status.State = StatePendingDisconnect
	default:
		status.State = StateOther
	}
	return status
}
