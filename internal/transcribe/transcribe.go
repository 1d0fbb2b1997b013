// Package transcribe resolves answer transcripts. Real speech-to-text sits
// behind the Transcriber interface; the built-in implementation is a
// placeholder until an STT backend is wired in.
package transcribe

import "context"

// Transcriber turns recorded answer media into a text transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaRef string) (string, error)
}

// Stub returns a canned transcript for any media reference.
// TODO: replace with a Whisper-backed implementation once the media upload
// path lands.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

func (*Stub) Transcribe(_ context.Context, _ string) (string, error) {
	return "This is a placeholder transcript of the candidate's recorded answer.", nil
}

// DefaultSpeechMetrics are the placeholder metrics attached to answers until
// real audio-feature extraction exists.
func DefaultSpeechMetrics() map[string]any {
	return map[string]any{
		"speech_rate":  "normal",
		"pauses":       "moderate",
		"filler_words": "low",
	}
}
