package asr

import (
	"fmt"
	"io"
	"time"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

// Wire-level constants. These values are fixed by the recognizer dialogue
// and must not drift: peers and interoperability tests depend on them.
const (
	grammarContentID     = "demo-grammar"
	grammarContentTypeV2 = "application/srgs+xml"
	grammarContentTypeV1 = "application/grammar+xml"
	grammarChunkSize     = 1024

	recognizeContentType = "text/uri-list"
	recognizeBody        = "session:" + grammarContentID

	noInputTimeout      = 5000 * time.Millisecond
	recognitionTimeout  = 10000 * time.Millisecond
	confidenceThreshold = 0.87
)

// defineGrammarRequest builds the DEFINE-GRAMMAR request, accumulating the
// full grammar source in fixed-size reads until exhaustion.
func defineGrammarRequest(v mrcp.Version, grammar io.Reader) (*mrcp.Message, error) {
	msg := mrcp.NewRequest(v, mrcp.MethodDefineGrammar)
	if v == mrcp.Version2 {
		msg.GenericHeader.ContentType = grammarContentTypeV2
	} else {
		msg.GenericHeader.ContentType = grammarContentTypeV1
	}
	msg.GenericHeader.ContentID = grammarContentID

	var body []byte
	buf := make([]byte, grammarChunkSize)
	for {
		n, err := grammar.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read grammar: %w", err)
		}
	}
	msg.Body = body
	return msg, nil
}

// recognizeRequest builds the RECOGNIZE request referencing the previously
// defined grammar.
func recognizeRequest(v mrcp.Version) *mrcp.Message {
	msg := mrcp.NewRequest(v, mrcp.MethodRecognize)
	msg.GenericHeader.ContentType = recognizeContentType
	msg.Body = []byte(recognizeBody)

	h := &msg.RecognizerHeader
	if v == mrcp.Version2 {
		h.CancelIfQueue = mrcp.Bool(false)
	}
	h.NoInputTimeout = noInputTimeout
	h.RecognitionTimeout = recognitionTimeout
	h.StartInputTimers = mrcp.Bool(true)
	h.ConfidenceThreshold = confidenceThreshold
	return msg
}
