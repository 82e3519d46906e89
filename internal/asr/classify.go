package asr

import "github.com/FloatbotAI/unimrcp/internal/mrcp"

// IsSigResponseSuccess reports whether the notification is a signaling
// response with a success status. Anything else, including a nil
// notification after a timed-out wait, is a failure.
func IsSigResponseSuccess(m *mrcp.AppMessage) bool {
	if m == nil || m.Kind != mrcp.AppMessageSignaling || m.SigType != mrcp.SigMessageResponse {
		return false
	}
	return m.SigStatus == mrcp.SigStatusSuccess
}

// IsControlResponseInState reports whether the notification is a control
// response in the given completion state. Events and signaling messages
// never match.
func IsControlResponseInState(m *mrcp.AppMessage, state mrcp.RequestState) bool {
	if m == nil || m.Kind != mrcp.AppMessageControl || m.Control == nil {
		return false
	}
	if m.Control.Type != mrcp.MessageTypeResponse {
		return false
	}
	return m.Control.RequestState == state
}

// EventMatching returns the control event carried by the notification iff
// its method matches, nil otherwise.
func EventMatching(m *mrcp.AppMessage, method mrcp.Method) *mrcp.Message {
	if m == nil || m.Kind != mrcp.AppMessageControl || m.Control == nil {
		return nil
	}
	if m.Control.Type != mrcp.MessageTypeEvent || m.Control.Method != method {
		return nil
	}
	return m.Control
}
