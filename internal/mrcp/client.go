package mrcp

// AppMessageKind separates session-lifecycle signaling from resource control.
type AppMessageKind int

const (
	AppMessageSignaling AppMessageKind = iota
	AppMessageControl
)

// SigMessageType is the kind of a signaling notification.
type SigMessageType int

const (
	SigMessageRequest SigMessageType = iota
	SigMessageResponse
	SigMessageEvent
)

// SigStatus is the status a signaling response reports.
type SigStatus int

const (
	SigStatusSuccess SigStatus = iota
	SigStatusFailure
)

// AppMessage is the envelope every asynchronous notification arrives in.
// It is owned by the stack and must not be mutated or retained past the
// handling of a single wait.
type AppMessage struct {
	Kind      AppMessageKind
	SigType   SigMessageType
	SigStatus SigStatus
	SessionID string

	// Control holds the control message when Kind is AppMessageControl.
	Control *Message
}

// Handler receives every asynchronous notification the stack produces.
// It is invoked from the stack's own dispatch context, never from the
// caller of the operation that triggered the notification.
type Handler func(*AppMessage)

// FrameType marks what a pulled media frame contains.
type FrameType uint8

const (
	FrameTypeNone  FrameType = 0
	FrameTypeAudio FrameType = 1 << 0
)

// Frame is one media frame buffer filled on demand by an AudioSource.
type Frame struct {
	Type FrameType
	Data []byte
}

// AudioSource supplies audio frames to the media subsystem on its cadence.
// ReadFrame must never block.
type AudioSource interface {
	ReadFrame(f *Frame)
}

// Resource identifies the control resource of a channel.
type Resource string

const ResourceRecognizer Resource = "speechrecog"

// Client is the protocol client stack. Session and channel negotiation,
// transport, and wire encoding live behind this interface; every operation
// with an asynchronous outcome reports it through the registered Handler.
type Client interface {
	// Register installs the application handler. Must be called before Start.
	Register(appName string, h Handler) error
	Start() error
	Shutdown() error
	Destroy() error

	// NewSession negotiates a session on the given profile.
	NewSession(profile string) (Session, error)
}

// Session is one negotiated protocol session.
type Session interface {
	ID() string
	Version() Version

	// NewChannel constructs a recognizer channel whose media termination
	// pulls audio from src.
	NewChannel(res Resource, src AudioSource) (Channel, error)

	// AddChannel attaches the channel; the outcome arrives as a signaling
	// response.
	AddChannel(ch Channel) error

	// Send issues a control request; the response and any subsequent events
	// arrive as control messages.
	Send(ch Channel, msg *Message) error

	// Terminate tears the session down; the outcome arrives as a signaling
	// response.
	Terminate() error

	// Destroy releases the session resource. No notifications follow.
	Destroy() error
}

// Channel is the resource control path within a session.
type Channel interface {
	Resource() Resource
}
