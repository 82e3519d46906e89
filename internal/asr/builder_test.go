package asr

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

func TestDefineGrammarRequest(t *testing.T) {
	grammar := "<grammar>small</grammar>"

	msg, err := defineGrammarRequest(mrcp.Version2, strings.NewReader(grammar))
	if err != nil {
		t.Fatalf("defineGrammarRequest() error = %v", err)
	}
	if msg.Type != mrcp.MessageTypeRequest || msg.Method != mrcp.MethodDefineGrammar {
		t.Errorf("unexpected message identity: %v %v", msg.Type, msg.Method)
	}
	if got := msg.GenericHeader.ContentType; got != "application/srgs+xml" {
		t.Errorf("version 2 content type = %q, want application/srgs+xml", got)
	}
	if got := msg.GenericHeader.ContentID; got != "demo-grammar" {
		t.Errorf("content id = %q, want demo-grammar", got)
	}
	if string(msg.Body) != grammar {
		t.Errorf("body = %q, want the full grammar", msg.Body)
	}
}

func TestDefineGrammarRequestVersion1ContentType(t *testing.T) {
	msg, err := defineGrammarRequest(mrcp.Version1, strings.NewReader("<g/>"))
	if err != nil {
		t.Fatalf("defineGrammarRequest() error = %v", err)
	}
	if got := msg.GenericHeader.ContentType; got != "application/grammar+xml" {
		t.Errorf("version 1 content type = %q, want application/grammar+xml", got)
	}
}

func TestDefineGrammarRequestAccumulatesLargeGrammar(t *testing.T) {
	// well past one read chunk
	grammar := strings.Repeat("x", grammarChunkSize*3+17)

	msg, err := defineGrammarRequest(mrcp.Version2, strings.NewReader(grammar))
	if err != nil {
		t.Fatalf("defineGrammarRequest() error = %v", err)
	}
	if !bytes.Equal(msg.Body, []byte(grammar)) {
		t.Errorf("body length = %d, want %d", len(msg.Body), len(grammar))
	}
}

func TestDefineGrammarRequestPartialReads(t *testing.T) {
	grammar := strings.Repeat("y", 2048)
	reader := iotest.OneByteReader(strings.NewReader(grammar))

	msg, err := defineGrammarRequest(mrcp.Version2, reader)
	if err != nil {
		t.Fatalf("defineGrammarRequest() error = %v", err)
	}
	if string(msg.Body) != grammar {
		t.Errorf("body length = %d, want %d", len(msg.Body), len(grammar))
	}
}

func TestDefineGrammarRequestReadError(t *testing.T) {
	reader := iotest.TimeoutReader(strings.NewReader(strings.Repeat("z", 4096)))
	// first read succeeds, second errors
	if _, err := defineGrammarRequest(mrcp.Version2, reader); err == nil {
		t.Errorf("defineGrammarRequest() expected error on failing reader")
	}
}

func TestRecognizeRequest(t *testing.T) {
	msg := recognizeRequest(mrcp.Version2)

	if msg.Type != mrcp.MessageTypeRequest || msg.Method != mrcp.MethodRecognize {
		t.Fatalf("unexpected message identity: %v %v", msg.Type, msg.Method)
	}
	if got := msg.GenericHeader.ContentType; got != "text/uri-list" {
		t.Errorf("content type = %q, want text/uri-list", got)
	}
	if got := string(msg.Body); got != "session:demo-grammar" {
		t.Errorf("body = %q, want session:demo-grammar", got)
	}

	h := msg.RecognizerHeader
	if h.NoInputTimeout != 5000*time.Millisecond {
		t.Errorf("no-input-timeout = %v, want 5s", h.NoInputTimeout)
	}
	if h.RecognitionTimeout != 10000*time.Millisecond {
		t.Errorf("recognition-timeout = %v, want 10s", h.RecognitionTimeout)
	}
	if h.StartInputTimers == nil || !*h.StartInputTimers {
		t.Errorf("start-input-timers not enabled")
	}
	if h.ConfidenceThreshold != 0.87 {
		t.Errorf("confidence-threshold = %v, want 0.87", h.ConfidenceThreshold)
	}
	if h.CancelIfQueue == nil || *h.CancelIfQueue {
		t.Errorf("cancel-if-queue must be set and disabled for version 2")
	}
}

func TestRecognizeRequestVersion1OmitsCancelIfQueue(t *testing.T) {
	msg := recognizeRequest(mrcp.Version1)
	if msg.RecognizerHeader.CancelIfQueue != nil {
		t.Errorf("cancel-if-queue must not be set for version 1")
	}
}
