package stream

const sinkBufferSize = 10

// Sink receives the messages broadcast by its parent source.
type Sink struct {
	id      string
	channel chan Message

	source *Source
}

// Messages returns the channel messages are delivered on.
// It is buffered, but the owner should drain it promptly; messages offered to a full
// sink are dropped. The channel is closed by Close.
func (s *Sink) Messages() <-chan Message {
	return s.channel
}

// Close detaches the sink from its source. Calling it more than once is safe.
func (s *Sink) Close() {
	if s.source.removeSink(s) {
		close(s.channel)
	}
}
