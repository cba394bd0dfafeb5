package stream

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is anything a source can broadcast.
type Message interface {
	String() string
}

// Source broadcasts messages to every sink registered with it.
// A sink that is not keeping up misses messages rather than blocking the source.
type Source struct {
	logger *zap.Logger

	sinks     map[string]*Sink
	sinksLock sync.Mutex
}

// NewSource creates a new message source.
func NewSource(logger *zap.Logger) *Source {
	return &Source{
		logger: logger,
		sinks:  map[string]*Sink{},
	}
}

// NewSink registers a new sink with this source.
func (s *Source) NewSink() *Sink {
	sink := &Sink{
		id:      uuid.New().String(),
		channel: make(chan Message, sinkBufferSize),
		source:  s,
	}

	s.sinksLock.Lock()
	s.sinks[sink.id] = sink
	s.sinksLock.Unlock()

	s.logger.Debug("added sink",
		zap.String("sink_id", sink.id),
	)
	return sink
}

// SinkCount returns the number of sinks currently registered.
func (s *Source) SinkCount() int {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()
	return len(s.sinks)
}

// SendMessage offers the message to every registered sink and returns how many accepted it.
func (s *Source) SendMessage(msg Message) int {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	delivered := 0
	for _, sink := range s.sinks {
		select {
		case sink.channel <- msg:
			delivered++
		default:
			s.logger.Debug("sink full, dropping message",
				zap.String("sink_id", sink.id),
				zap.String("message", msg.String()),
			)
		}
	}
	return delivered
}

func (s *Source) removeSink(sink *Sink) bool {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	if _, ok := s.sinks[sink.id]; !ok {
		return false
	}
	delete(s.sinks, sink.id)
	return true
}
