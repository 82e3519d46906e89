// Package asr orchestrates recognition dialogues over an asynchronous
// protocol client stack: it sequences the channel-add, grammar definition,
// recognize and terminate exchanges, streams audio on demand, and routes the
// stack's notifications to the session waiting on them.
package asr

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

const appName = "asrclient"

// Config tunes the engine. The zero value is usable.
type Config struct {
	// Profile names the client stack profile sessions are created on.
	Profile string
	// ResultTimeout bounds the wait for the recognition result.
	ResultTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.Profile == "" {
		c.Profile = "uni2"
	}
	if c.ResultTimeout <= 0 {
		c.ResultTimeout = 60 * time.Second
	}
}

// Engine owns the protocol client stack and routes its notifications.
// Create one per process; sessions are launched from it concurrently.
type Engine struct {
	client mrcp.Client
	cfg    Config

	mu       sync.RWMutex
	sessions map[string]*Session

	wg sync.WaitGroup
}

// NewEngine registers the application with the client stack and starts it.
func NewEngine(client mrcp.Client, cfg Config) (*Engine, error) {
	cfg.applyDefaults()
	e := &Engine{
		client:   client,
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
	if err := client.Register(appName, e.handleAppMessage); err != nil {
		return nil, fmt.Errorf("register application: %w", err)
	}
	if err := client.Start(); err != nil {
		_ = client.Destroy()
		return nil, fmt.Errorf("start client stack: %w", err)
	}
	return e, nil
}

// handleAppMessage is the notification relay. It runs on the stack's
// dispatch context: resolve the session, hand over the message, return.
// Signaling events that are not responses are of no interest here.
func (e *Engine) handleAppMessage(m *mrcp.AppMessage) {
	if m == nil {
		return
	}
	if m.Kind == mrcp.AppMessageSignaling && m.SigType != mrcp.SigMessageResponse {
		return
	}
	e.mu.RLock()
	s := e.sessions[m.SessionID]
	e.mu.RUnlock()
	if s == nil {
		log.Printf("Engine: notification for unknown session %s dropped", m.SessionID)
		return
	}
	s.deliver(m)
}

// Launch opens the inputs, negotiates a session and channel, and starts the
// worker goroutine that drives the dialogue. Failures here leave nothing
// behind: no session is registered and no goroutine is spawned.
func (e *Engine) Launch(ctx context.Context, grammarPath, audioPath string) (*Session, error) {
	grammar, err := os.Open(grammarPath)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	audioIn, err := os.Open(audioPath)
	if err != nil {
		grammar.Close()
		return nil, fmt.Errorf("open audio input: %w", err)
	}

	sess, err := e.client.NewSession(e.cfg.Profile)
	if err != nil {
		grammar.Close()
		audioIn.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}

	s := &Session{
		engine:        e,
		sess:          sess,
		grammar:       grammar,
		audioIn:       audioIn,
		mailbox:       make(chan *mrcp.AppMessage, 1),
		resultTimeout: e.cfg.ResultTimeout,
		status:        StatusIdle,
		done:          make(chan struct{}),
	}

	ch, err := sess.NewChannel(mrcp.ResourceRecognizer, &audioStream{session: s})
	if err != nil {
		grammar.Close()
		audioIn.Close()
		_ = sess.Destroy()
		return nil, fmt.Errorf("create channel: %w", err)
	}
	s.ch = ch

	e.mu.Lock()
	e.sessions[s.ID()] = s
	e.mu.Unlock()

	log.Printf("Engine: session %s launched (grammar %s, audio %s)", s.ID(), grammarPath, audioPath)
	e.wg.Add(1)
	go s.run(ctx)
	return s, nil
}

func (e *Engine) remove(id string) {
	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
}

// Close waits for in-flight sessions, then shuts the client stack down and
// destroys it.
func (e *Engine) Close() error {
	e.wg.Wait()
	if err := e.client.Shutdown(); err != nil {
		return fmt.Errorf("shutdown client stack: %w", err)
	}
	return e.client.Destroy()
}
