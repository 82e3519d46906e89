package asr

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
	"github.com/FloatbotAI/unimrcp/internal/nlsml"
)

// Status tags the state the recognition dialogue is in.
type Status string

const (
	StatusIdle              Status = "idle"
	StatusAwaitingChannel   Status = "awaiting-channel-add"
	StatusAwaitingGrammar   Status = "awaiting-grammar-response"
	StatusAwaitingRecognize Status = "awaiting-recognize-response"
	StatusStreaming         Status = "streaming"
	StatusTerminating       Status = "terminating"
	StatusDone              Status = "done"
)

var (
	ErrChannelAdd    = errors.New("channel add rejected")
	ErrDefineGrammar = errors.New("define-grammar not completed")
	ErrRecognize     = errors.New("recognize not accepted")
)

// Session drives one recognition dialogue to completion. A single worker
// goroutine issues every request and owns teardown; the engine's relay only
// writes into the mailbox.
type Session struct {
	engine *Engine
	sess   mrcp.Session
	ch     mrcp.Channel

	grammar *os.File
	audioIn *os.File

	// streaming gates the audio adapter; raised only after the RECOGNIZE
	// response reports IN-PROGRESS, cleared on source exhaustion or teardown.
	streaming atomic.Bool

	// mailbox holds at most the latest undelivered notification. deliverMu
	// serializes writers so the newest notification wins; the worker is the
	// only reader.
	deliverMu sync.Mutex
	mailbox   chan *mrcp.AppMessage

	resultTimeout time.Duration

	statusMu sync.Mutex
	status   Status

	results []nlsml.Interpretation
	err     error

	done         chan struct{}
	teardownOnce sync.Once
}

// ID is the identity the relay routes notifications by.
func (s *Session) ID() string { return s.sess.ID() }

// Done is closed once the dialogue has finished and every resource is
// released.
func (s *Session) Done() <-chan struct{} { return s.done }

// Results returns the parsed interpretations. Valid once Done is closed;
// empty when the wait timed out or the result document was unusable.
func (s *Session) Results() []nlsml.Interpretation { return s.results }

// Err reports the negotiation failure that aborted the dialogue, nil on a
// clean run (a result-wait timeout is not a failure).
func (s *Session) Err() error { return s.err }

func (s *Session) Status() Status {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

func (s *Session) setStatus(st Status) {
	s.statusMu.Lock()
	s.status = st
	s.statusMu.Unlock()
}

// deliver stores a notification for the waiting worker, overwriting any
// unread previous one. Called from the stack's dispatch context.
func (s *Session) deliver(m *mrcp.AppMessage) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	select {
	case <-s.mailbox:
	default:
	}
	s.mailbox <- m
}

// clearMailbox drops a leftover notification so a stale message can never be
// read as the answer to the request about to be issued.
func (s *Session) clearMailbox() {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	select {
	case <-s.mailbox:
	default:
	}
}

// await blocks until a notification arrives. A non-positive timeout blocks
// until delivery or context cancellation; otherwise nil is returned once the
// timeout elapses.
func (s *Session) await(ctx context.Context, timeout time.Duration) *mrcp.AppMessage {
	if timeout <= 0 {
		select {
		case m := <-s.mailbox:
			return m
		case <-ctx.Done():
			return nil
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m := <-s.mailbox:
		return m
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// run executes the dialogue. Every failure falls through to teardown; there
// is no retry.
func (s *Session) run(ctx context.Context) {
	defer s.engine.wg.Done()
	defer close(s.done)

	// 1. attach the channel, wait for the signaling response
	s.setStatus(StatusAwaitingChannel)
	s.clearMailbox()
	var reply *mrcp.AppMessage
	if err := s.sess.AddChannel(s.ch); err == nil {
		reply = s.await(ctx, 0)
	} else {
		log.Printf("Session %s: add channel: %v", s.ID(), err)
	}
	if !IsSigResponseSuccess(reply) {
		s.fail(ErrChannelAdd)
		s.teardown(ctx)
		return
	}

	// 2. DEFINE-GRAMMAR, wait for a COMPLETE response
	s.setStatus(StatusAwaitingGrammar)
	s.clearMailbox()
	reply = nil
	if msg, err := defineGrammarRequest(s.sess.Version(), s.grammar); err != nil {
		log.Printf("Session %s: build define-grammar: %v", s.ID(), err)
	} else if err := s.sess.Send(s.ch, msg); err != nil {
		log.Printf("Session %s: send define-grammar: %v", s.ID(), err)
	} else {
		reply = s.await(ctx, 0)
	}
	if !IsControlResponseInState(reply, mrcp.RequestStateComplete) {
		s.fail(ErrDefineGrammar)
		s.teardown(ctx)
		return
	}

	// 3. RECOGNIZE, wait for an IN-PROGRESS response
	s.setStatus(StatusAwaitingRecognize)
	s.clearMailbox()
	reply = nil
	if err := s.sess.Send(s.ch, recognizeRequest(s.sess.Version())); err != nil {
		log.Printf("Session %s: send recognize: %v", s.ID(), err)
	} else {
		reply = s.await(ctx, 0)
	}
	if !IsControlResponseInState(reply, mrcp.RequestStateInProgress) {
		s.fail(ErrRecognize)
		s.teardown(ctx)
		return
	}

	// 4. recognition is running: unblock the audio adapter
	s.streaming.Store(true)
	s.setStatus(StatusStreaming)

	// 5. wait for RECOGNITION-COMPLETE, skipping other events; a timeout
	// ends the wait with no result
	var complete *mrcp.Message
	for {
		m := s.await(ctx, s.resultTimeout)
		if m == nil {
			log.Printf("Session %s: no recognition result within %v", s.ID(), s.resultTimeout)
			break
		}
		if evt := EventMatching(m, mrcp.MethodRecognitionComplete); evt != nil {
			complete = evt
			break
		}
	}

	// 6. best-effort result extraction
	if complete != nil {
		res, err := nlsml.Parse(complete.Body)
		if err != nil {
			log.Printf("Session %s: unusable result document: %v", s.ID(), err)
		} else {
			s.results = res.Interpretations
			for _, in := range res.Interpretations {
				if in.Instance != "" {
					log.Printf("Session %s: interpreted instance [%s]", s.ID(), in.Instance)
				}
				if in.Input != "" {
					log.Printf("Session %s: interpreted input [%s]", s.ID(), in.Input)
				}
			}
		}
	}

	// 7. terminate and release
	s.teardown(ctx)
}

func (s *Session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
	log.Printf("Session %s: %v", s.ID(), err)
}

// teardown converges every exit path: terminate the protocol session, wait
// for its response (content ignored beyond unblocking), release the input
// files and the session resource. Runs at most once.
func (s *Session) teardown(ctx context.Context) {
	s.teardownOnce.Do(func() {
		s.setStatus(StatusTerminating)
		s.streaming.Store(false)

		s.clearMailbox()
		if err := s.sess.Terminate(); err != nil {
			log.Printf("Session %s: terminate: %v", s.ID(), err)
		} else {
			s.await(ctx, 0)
		}

		if s.grammar != nil {
			s.grammar.Close()
		}
		if s.audioIn != nil {
			s.audioIn.Close()
		}

		s.engine.remove(s.ID())
		if err := s.sess.Destroy(); err != nil {
			log.Printf("Session %s: destroy: %v", s.ID(), err)
		}
		s.setStatus(StatusDone)
	})
}
