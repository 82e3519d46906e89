package asr

import (
	"io"

	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

// audioStream feeds the session's audio file to the media subsystem. The
// media layer calls ReadFrame on its own cadence, concurrently with the
// session worker; the call must never block beyond the file read itself.
type audioStream struct {
	session *Session
}

func (a *audioStream) ReadFrame(f *mrcp.Frame) {
	s := a.session
	if !s.streaming.Load() {
		return
	}
	audio := s.audioIn
	if audio == nil {
		return
	}
	n, err := io.ReadFull(audio, f.Data)
	if err == nil && n == len(f.Data) {
		f.Type |= mrcp.FrameTypeAudio
		return
	}
	// short read: the source is exhausted, stop streaming for good
	s.streaming.Store(false)
}
