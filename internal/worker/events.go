package worker

import "time"

// EventHeader carries the correlation fields every event shares.
type EventHeader struct {
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	EventID    string    `json:"event_id"`
}

// NoteAudioRequestedEvent asks the worker to generate audio for one note.
type NoteAudioRequestedEvent struct {
	Header   EventHeader `json:"header"`
	NotePath string      `json:"note_path"`
}

// NoteAudioGeneratedEvent is the reply published after a run completes. For
// non-generated outcomes AudioKey is empty.
type NoteAudioGeneratedEvent struct {
	Header    EventHeader `json:"header"`
	NotePath  string      `json:"note_path"`
	Outcome   string      `json:"outcome"`
	AudioKey  string      `json:"audio_key,omitempty"`
	WordCount int         `json:"word_count,omitempty"`
	Message   string      `json:"message"`
}
