// Package testutil provides fixtures and hand-written mocks shared by tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

// SampleGrammar is a small SRGS grammar document.
const SampleGrammar = `<?xml version="1.0" encoding="UTF-8"?>
<grammar xmlns="http://www.w3.org/2001/06/grammar" root="command">
  <rule id="command">
    <one-of>
      <item>open the door</item>
      <item>close the door</item>
    </one-of>
  </rule>
</grammar>
`

// SampleResult is an NLSML result document matching SampleGrammar.
const SampleResult = `<?xml version="1.0"?>
<result>
  <interpretation confidence="0.92">
    <instance>open_door</instance>
    <input mode="speech">open the door</input>
  </interpretation>
</result>
`

// WriteGrammarFile writes a grammar fixture and returns its path.
func WriteGrammarFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grammar.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write grammar fixture: %v", err)
	}
	return path
}

// WriteAudioFile writes size bytes of deterministic PCM-like data and
// returns its path. 4 seconds of 8 kHz 16-bit mono is 64000 bytes.
func WriteAudioFile(t *testing.T, size int) string {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	path := filepath.Join(t.TempDir(), "input.pcm")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write audio fixture: %v", err)
	}
	return path
}

// WaitForCondition waits for a condition to be true or times out
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("Condition not met within %v", timeout)
		default:
			if condition() {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// ScriptedClient implements mrcp.Client with full manual control over
// notification delivery. Tests drive it directly; nothing happens on its
// own.
type ScriptedClient struct {
	mu      sync.Mutex
	handler mrcp.Handler
	started bool
	nextID  int

	NewSessionErr error
	Version       mrcp.Version

	// Prepare, when set, scripts each new session before it is handed to
	// the caller.
	Prepare func(s *ScriptedSession)

	Sessions []*ScriptedSession
}

func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{Version: mrcp.Version2}
}

func (c *ScriptedClient) Register(appName string, h mrcp.Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
	return nil
}

func (c *ScriptedClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return fmt.Errorf("scripted client: no handler registered")
	}
	c.started = true
	return nil
}

func (c *ScriptedClient) Shutdown() error { return nil }
func (c *ScriptedClient) Destroy() error  { return nil }

func (c *ScriptedClient) NewSession(profile string) (mrcp.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.NewSessionErr != nil {
		return nil, c.NewSessionErr
	}
	c.nextID++
	s := &ScriptedSession{
		client:  c,
		IDValue: fmt.Sprintf("sess-%d", c.nextID),
		Profile: profile,
	}
	if c.Prepare != nil {
		c.Prepare(s)
	}
	c.Sessions = append(c.Sessions, s)
	return s, nil
}

// Deliver hands a notification to the registered handler, as the stack's
// dispatch context would.
func (c *ScriptedClient) Deliver(m *mrcp.AppMessage) {
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()
	if h != nil {
		h(m)
	}
}

// ScriptedSession records every operation and lets tests script the
// asynchronous outcome via the On* hooks (invoked synchronously).
type ScriptedSession struct {
	client  *ScriptedClient
	IDValue string
	Profile string

	mu           sync.Mutex
	Source       mrcp.AudioSource
	AddCalls     int
	Sent         []*mrcp.Message
	TerminateCnt int
	DestroyCnt   int

	AddChannelErr error
	SendErr       error
	TerminateErr  error

	OnAddChannel func(s *ScriptedSession)
	OnSend       func(s *ScriptedSession, msg *mrcp.Message)
	OnTerminate  func(s *ScriptedSession)
}

func (s *ScriptedSession) ID() string            { return s.IDValue }
func (s *ScriptedSession) Version() mrcp.Version { return s.client.Version }

func (s *ScriptedSession) NewChannel(res mrcp.Resource, src mrcp.AudioSource) (mrcp.Channel, error) {
	s.mu.Lock()
	s.Source = src
	s.mu.Unlock()
	return scriptedChannel{res: res}, nil
}

func (s *ScriptedSession) AddChannel(ch mrcp.Channel) error {
	s.mu.Lock()
	s.AddCalls++
	hook := s.OnAddChannel
	s.mu.Unlock()
	if s.AddChannelErr != nil {
		return s.AddChannelErr
	}
	if hook != nil {
		hook(s)
	}
	return nil
}

func (s *ScriptedSession) Send(ch mrcp.Channel, msg *mrcp.Message) error {
	s.mu.Lock()
	s.Sent = append(s.Sent, msg)
	hook := s.OnSend
	s.mu.Unlock()
	if s.SendErr != nil {
		return s.SendErr
	}
	if hook != nil {
		hook(s, msg)
	}
	return nil
}

func (s *ScriptedSession) Terminate() error {
	s.mu.Lock()
	s.TerminateCnt++
	hook := s.OnTerminate
	s.mu.Unlock()
	if s.TerminateErr != nil {
		return s.TerminateErr
	}
	if hook != nil {
		hook(s)
	}
	return nil
}

func (s *ScriptedSession) Destroy() error {
	s.mu.Lock()
	s.DestroyCnt++
	s.mu.Unlock()
	return nil
}

// DeliverSig delivers a signaling response for this session.
func (s *ScriptedSession) DeliverSig(status mrcp.SigStatus) {
	s.client.Deliver(&mrcp.AppMessage{
		Kind:      mrcp.AppMessageSignaling,
		SigType:   mrcp.SigMessageResponse,
		SigStatus: status,
		SessionID: s.IDValue,
	})
}

// DeliverControl delivers a control message for this session.
func (s *ScriptedSession) DeliverControl(msg *mrcp.Message) {
	s.client.Deliver(&mrcp.AppMessage{
		Kind:      mrcp.AppMessageControl,
		SessionID: s.IDValue,
		Control:   msg,
	})
}

// Terminated reports how many times Terminate was called.
func (s *ScriptedSession) Terminated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.TerminateCnt
}

// Destroyed reports how many times Destroy was called.
func (s *ScriptedSession) Destroyed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.DestroyCnt
}

// SentMessages returns a copy of the control requests issued so far.
func (s *ScriptedSession) SentMessages() []*mrcp.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*mrcp.Message, len(s.Sent))
	copy(out, s.Sent)
	return out
}

type scriptedChannel struct {
	res mrcp.Resource
}

func (c scriptedChannel) Resource() mrcp.Resource { return c.res }
