package mrcp

import "time"

// Version is the negotiated protocol major version.
type Version int

const (
	Version1 Version = 1
	Version2 Version = 2
)

// MessageType distinguishes control messages on a channel.
type MessageType int

const (
	MessageTypeRequest MessageType = iota
	MessageTypeResponse
	MessageTypeEvent
)

// RequestState is the completion state a response or event reports.
type RequestState string

const (
	RequestStateComplete   RequestState = "COMPLETE"
	RequestStateInProgress RequestState = "IN-PROGRESS"
	RequestStatePending    RequestState = "PENDING"
)

// Method identifies a recognizer request or event.
type Method string

const (
	MethodDefineGrammar       Method = "DEFINE-GRAMMAR"
	MethodRecognize           Method = "RECOGNIZE"
	MethodStartOfInput        Method = "START-OF-INPUT"
	MethodRecognitionComplete Method = "RECOGNITION-COMPLETE"
)

// GenericHeader carries the header fields common to all resources.
// Zero values mean the field is not set.
type GenericHeader struct {
	ContentType string
	ContentID   string
}

// RecognizerHeader carries the recognizer-specific header fields.
// Pointer fields distinguish "unset" from a zero value on the wire.
type RecognizerHeader struct {
	NoInputTimeout      time.Duration
	RecognitionTimeout  time.Duration
	StartInputTimers    *bool
	CancelIfQueue       *bool
	ConfidenceThreshold float32
}

// Message is one control message: a request, a response, or an event.
type Message struct {
	Version      Version
	Type         MessageType
	Method       Method
	RequestState RequestState
	StatusCode   int

	GenericHeader    GenericHeader
	RecognizerHeader RecognizerHeader

	Body []byte
}

// NewRequest creates a request message for the given method.
func NewRequest(v Version, method Method) *Message {
	return &Message{
		Version: v,
		Type:    MessageTypeRequest,
		Method:  method,
	}
}

// NewResponse creates a response to the given request in the given state.
func NewResponse(req *Message, state RequestState, statusCode int) *Message {
	return &Message{
		Version:      req.Version,
		Type:         MessageTypeResponse,
		Method:       req.Method,
		RequestState: state,
		StatusCode:   statusCode,
	}
}

// NewEvent creates an event message in the given state.
func NewEvent(v Version, method Method, state RequestState) *Message {
	return &Message{
		Version:      v,
		Type:         MessageTypeEvent,
		Method:       method,
		RequestState: state,
	}
}

// Bool is a helper for the optional boolean header fields.
func Bool(v bool) *bool { return &v }
