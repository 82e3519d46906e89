package mrcp

import "testing"

func TestNewResponseMirrorsRequest(t *testing.T) {
	req := NewRequest(Version1, MethodRecognize)
	if req.Type != MessageTypeRequest {
		t.Errorf("Type = %v, want %v", req.Type, MessageTypeRequest)
	}

	resp := NewResponse(req, RequestStateInProgress, 200)
	if resp.Type != MessageTypeResponse {
		t.Errorf("Type = %v, want %v", resp.Type, MessageTypeResponse)
	}
	if resp.Version != Version1 || resp.Method != MethodRecognize {
		t.Errorf("response does not mirror the request: %+v", resp)
	}
	if resp.RequestState != RequestStateInProgress || resp.StatusCode != 200 {
		t.Errorf("RequestState = %v StatusCode = %d, want IN-PROGRESS 200", resp.RequestState, resp.StatusCode)
	}
}

func TestNewEvent(t *testing.T) {
	evt := NewEvent(Version2, MethodStartOfInput, RequestStateInProgress)
	if evt.Type != MessageTypeEvent {
		t.Errorf("Type = %v, want %v", evt.Type, MessageTypeEvent)
	}
	if evt.Method != MethodStartOfInput || evt.RequestState != RequestStateInProgress {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestOptionalHeaderFields(t *testing.T) {
	var h RecognizerHeader
	if h.StartInputTimers != nil || h.CancelIfQueue != nil {
		t.Error("optional fields of a zero header must be unset")
	}
	h.CancelIfQueue = Bool(false)
	if h.CancelIfQueue == nil || *h.CancelIfQueue {
		t.Error("Bool(false) must yield a set false value")
	}
}
