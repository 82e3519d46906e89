package mrcp

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoopbackConfig tunes the in-process recognizer stack. The zero value gives
// a well-behaved recognizer; the failure knobs force each abort path.
type LoopbackConfig struct {
	Version     Version       // protocol version reported by sessions (default 2)
	FrameSize   int           // bytes pulled per media frame (default 160)
	FramePeriod time.Duration // media pump cadence (default 10ms)
	ResultBody  string        // NLSML body of the RECOGNITION-COMPLETE event

	FailChannelAdd     bool         // answer channel-add with a failure status
	DefineGrammarState RequestState // state of the DEFINE-GRAMMAR response (default COMPLETE)
	RecognizeState     RequestState // state of the RECOGNIZE response (default IN-PROGRESS)
	SuppressCompletion bool         // never emit RECOGNITION-COMPLETE (timeout path)
	SkipStartOfInput   bool         // do not emit the START-OF-INPUT event
}

func (c *LoopbackConfig) applyDefaults() {
	if c.Version == 0 {
		c.Version = Version2
	}
	if c.FrameSize <= 0 {
		c.FrameSize = 160
	}
	if c.FramePeriod <= 0 {
		c.FramePeriod = 10 * time.Millisecond
	}
	if c.DefineGrammarState == "" {
		c.DefineGrammarState = RequestStateComplete
	}
	if c.RecognizeState == "" {
		c.RecognizeState = RequestStateInProgress
	}
}

// Loopback is an in-process recognizer stack: it answers the recognition
// dialogue without any transport or wire encoding. Notifications are
// dispatched from a per-session goroutine, so the application observes the
// same asynchronous delivery it would from a networked stack.
type Loopback struct {
	cfg LoopbackConfig

	mu      sync.Mutex
	handler Handler
	appName string
	started bool
	wg      sync.WaitGroup
}

func NewLoopback(cfg LoopbackConfig) *Loopback {
	cfg.applyDefaults()
	return &Loopback{cfg: cfg}
}

func (l *Loopback) Register(appName string, h Handler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("loopback: register after start")
	}
	l.appName = appName
	l.handler = h
	return nil
}

func (l *Loopback) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handler == nil {
		return fmt.Errorf("loopback: no handler registered")
	}
	l.started = true
	return nil
}

func (l *Loopback) Shutdown() error {
	l.mu.Lock()
	l.started = false
	l.mu.Unlock()
	l.wg.Wait()
	return nil
}

func (l *Loopback) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
	return nil
}

func (l *Loopback) NewSession(profile string) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return nil, fmt.Errorf("loopback: client not started")
	}
	s := &loopbackSession{
		stack:   l,
		id:      uuid.NewString(),
		profile: profile,
		queue:   make(chan *AppMessage, 8),
		quit:    make(chan struct{}),
	}
	l.wg.Add(1)
	go s.dispatchLoop(l.handler)
	return s, nil
}

type loopbackSession struct {
	stack   *Loopback
	id      string
	profile string

	mu       sync.Mutex
	source   AudioSource
	pumping  bool
	stopPump chan struct{}

	queue chan *AppMessage
	quit  chan struct{}
	once  sync.Once
}

// dispatchLoop delivers notifications in order from a context independent of
// the caller issuing requests.
func (s *loopbackSession) dispatchLoop(h Handler) {
	defer s.stack.wg.Done()
	for {
		select {
		case m := <-s.queue:
			h(m)
		case <-s.quit:
			// drain anything already queued
			for {
				select {
				case m := <-s.queue:
					h(m)
				default:
					return
				}
			}
		}
	}
}

func (s *loopbackSession) deliver(m *AppMessage) {
	select {
	case s.queue <- m:
	case <-s.quit:
	}
}

func (s *loopbackSession) ID() string       { return s.id }
func (s *loopbackSession) Version() Version { return s.stack.cfg.Version }

func (s *loopbackSession) NewChannel(res Resource, src AudioSource) (Channel, error) {
	if res != ResourceRecognizer {
		return nil, fmt.Errorf("loopback: unsupported resource %q", res)
	}
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
	return loopbackChannel{res: res}, nil
}

func (s *loopbackSession) AddChannel(ch Channel) error {
	status := SigStatusSuccess
	if s.stack.cfg.FailChannelAdd {
		status = SigStatusFailure
	}
	s.deliver(&AppMessage{
		Kind:      AppMessageSignaling,
		SigType:   SigMessageResponse,
		SigStatus: status,
		SessionID: s.id,
	})
	return nil
}

func (s *loopbackSession) Send(ch Channel, msg *Message) error {
	if msg == nil || msg.Type != MessageTypeRequest {
		return fmt.Errorf("loopback: not a request")
	}
	cfg := s.stack.cfg
	switch msg.Method {
	case MethodDefineGrammar:
		s.deliverControl(NewResponse(msg, cfg.DefineGrammarState, 200))
	case MethodRecognize:
		s.deliverControl(NewResponse(msg, cfg.RecognizeState, 200))
		if cfg.RecognizeState == RequestStateInProgress {
			s.startPump()
		}
	default:
		return fmt.Errorf("loopback: unsupported method %q", msg.Method)
	}
	return nil
}

func (s *loopbackSession) deliverControl(msg *Message) {
	s.deliver(&AppMessage{
		Kind:      AppMessageControl,
		SessionID: s.id,
		Control:   msg,
	})
}

// startPump begins pulling frames from the channel's audio source. Once
// audio has been observed, the first frame without audio marks the end of
// input and triggers the RECOGNITION-COMPLETE event.
func (s *loopbackSession) startPump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pumping || s.source == nil {
		return
	}
	s.pumping = true
	s.stopPump = make(chan struct{})
	s.stack.wg.Add(1)
	go s.pump(s.source, s.stopPump)
}

func (s *loopbackSession) pump(src AudioSource, stop chan struct{}) {
	defer s.stack.wg.Done()
	cfg := s.stack.cfg
	ticker := time.NewTicker(cfg.FramePeriod)
	defer ticker.Stop()

	sawAudio := false
	for {
		select {
		case <-stop:
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}

		frame := Frame{Data: make([]byte, cfg.FrameSize)}
		src.ReadFrame(&frame)
		if frame.Type&FrameTypeAudio != 0 {
			if !sawAudio {
				sawAudio = true
				if !cfg.SkipStartOfInput {
					s.deliverControl(NewEvent(cfg.Version, MethodStartOfInput, RequestStateInProgress))
				}
			}
			continue
		}
		if !sawAudio {
			continue
		}
		// input is over
		if !cfg.SuppressCompletion {
			evt := NewEvent(cfg.Version, MethodRecognitionComplete, RequestStateComplete)
			evt.GenericHeader.ContentType = "application/x-nlsml"
			evt.Body = []byte(cfg.ResultBody)
			s.deliverControl(evt)
		}
		return
	}
}

func (s *loopbackSession) Terminate() error {
	s.mu.Lock()
	if s.stopPump != nil {
		select {
		case <-s.stopPump:
		default:
			close(s.stopPump)
		}
		s.pumping = false
	}
	s.mu.Unlock()

	s.deliver(&AppMessage{
		Kind:      AppMessageSignaling,
		SigType:   SigMessageResponse,
		SigStatus: SigStatusSuccess,
		SessionID: s.id,
	})
	return nil
}

func (s *loopbackSession) Destroy() error {
	s.once.Do(func() { close(s.quit) })
	log.Printf("Loopback: session %s destroyed", s.id)
	return nil
}

type loopbackChannel struct {
	res Resource
}

func (c loopbackChannel) Resource() Resource { return c.res }
