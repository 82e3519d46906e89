package asr

import (
	"testing"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

func sigResponse(status mrcp.SigStatus) *mrcp.AppMessage {
	return &mrcp.AppMessage{
		Kind:      mrcp.AppMessageSignaling,
		SigType:   mrcp.SigMessageResponse,
		SigStatus: status,
		SessionID: "s",
	}
}

func controlMessage(msg *mrcp.Message) *mrcp.AppMessage {
	return &mrcp.AppMessage{
		Kind:      mrcp.AppMessageControl,
		SessionID: "s",
		Control:   msg,
	}
}

func TestIsSigResponseSuccess(t *testing.T) {
	tests := []struct {
		name string
		msg  *mrcp.AppMessage
		want bool
	}{
		{"nil message", nil, false},
		{"success response", sigResponse(mrcp.SigStatusSuccess), true},
		{"failure response", sigResponse(mrcp.SigStatusFailure), false},
		{
			"signaling event is not a response",
			&mrcp.AppMessage{
				Kind:      mrcp.AppMessageSignaling,
				SigType:   mrcp.SigMessageEvent,
				SigStatus: mrcp.SigStatusSuccess,
			},
			false,
		},
		{
			"control message never matches",
			controlMessage(mrcp.NewResponse(mrcp.NewRequest(mrcp.Version2, mrcp.MethodRecognize), mrcp.RequestStateComplete, 200)),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSigResponseSuccess(tt.msg); got != tt.want {
				t.Errorf("IsSigResponseSuccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsControlResponseInState(t *testing.T) {
	req := mrcp.NewRequest(mrcp.Version2, mrcp.MethodDefineGrammar)

	tests := []struct {
		name  string
		msg   *mrcp.AppMessage
		state mrcp.RequestState
		want  bool
	}{
		{"nil message", nil, mrcp.RequestStateComplete, false},
		{
			"matching state",
			controlMessage(mrcp.NewResponse(req, mrcp.RequestStateComplete, 200)),
			mrcp.RequestStateComplete,
			true,
		},
		{
			"mismatched state",
			controlMessage(mrcp.NewResponse(req, mrcp.RequestStateInProgress, 200)),
			mrcp.RequestStateComplete,
			false,
		},
		{
			"event is not a response",
			controlMessage(mrcp.NewEvent(mrcp.Version2, mrcp.MethodRecognitionComplete, mrcp.RequestStateComplete)),
			mrcp.RequestStateComplete,
			false,
		},
		{
			"signaling response is not a control response",
			sigResponse(mrcp.SigStatusSuccess),
			mrcp.RequestStateComplete,
			false,
		},
		{
			"control envelope without message",
			&mrcp.AppMessage{Kind: mrcp.AppMessageControl},
			mrcp.RequestStateComplete,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsControlResponseInState(tt.msg, tt.state); got != tt.want {
				t.Errorf("IsControlResponseInState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventMatching(t *testing.T) {
	complete := mrcp.NewEvent(mrcp.Version2, mrcp.MethodRecognitionComplete, mrcp.RequestStateComplete)
	startOfInput := mrcp.NewEvent(mrcp.Version2, mrcp.MethodStartOfInput, mrcp.RequestStateInProgress)

	if got := EventMatching(controlMessage(complete), mrcp.MethodRecognitionComplete); got != complete {
		t.Errorf("EventMatching() = %v, want the completion event", got)
	}
	if got := EventMatching(controlMessage(startOfInput), mrcp.MethodRecognitionComplete); got != nil {
		t.Errorf("EventMatching() matched a different method: %v", got)
	}
	resp := mrcp.NewResponse(mrcp.NewRequest(mrcp.Version2, mrcp.MethodRecognize), mrcp.RequestStateInProgress, 200)
	if got := EventMatching(controlMessage(resp), mrcp.MethodRecognize); got != nil {
		t.Errorf("EventMatching() matched a response: %v", got)
	}
	if got := EventMatching(nil, mrcp.MethodRecognitionComplete); got != nil {
		t.Errorf("EventMatching(nil) = %v, want nil", got)
	}
}
