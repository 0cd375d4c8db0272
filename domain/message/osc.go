package message

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/hypebeast/go-osc/osc"
)

// Sender is the transport used by OSCSink. *osc.Client satisfies it.
type Sender interface {
	Send(packet osc.Packet) error
}

// OSCSink emits messages as OSC over UDP. Send errors are logged and counted.
type OSCSink struct {
	sender Sender
	logger *slog.Logger
	sent   atomic.Uint64
	failed atomic.Uint64
}

// NewOSCSink creates a UDP OSC client for host:port.
func NewOSCSink(host string, port int, logger *slog.Logger) *OSCSink {
	return NewOSCSinkWithSender(osc.NewClient(host, port), logger)
}

// NewOSCSinkWithSender uses an explicit transport.
func NewOSCSinkWithSender(sender Sender, logger *slog.Logger) *OSCSink {
	return &OSCSink{sender: sender, logger: logger}
}

// Emit sends value to path. Integers are sent as int32, floats as float32 and
// float slices as a float32 argument list.
func (s *OSCSink) Emit(path string, value any) {
	defer func() {
		if r := recover(); r != nil {
			s.failed.Add(1)
			if s.logger != nil {
				s.logger.Error("osc send panic", "path", path, "error", r)
			}
		}
	}()
	msg := osc.NewMessage(path)
	if err := appendValue(msg, value); err != nil {
		s.failed.Add(1)
		if s.logger != nil {
			s.logger.Error("osc encode", "path", path, "error", err)
		}
		return
	}
	if err := s.sender.Send(msg); err != nil {
		s.failed.Add(1)
		if s.logger != nil {
			s.logger.Error("osc send", "path", path, "error", err)
		}
		return
	}
	s.sent.Add(1)
	if s.logger != nil {
		s.logger.Debug("osc sent", "path", path, "value", value)
	}
}

// Stats returns the emission counters.
func (s *OSCSink) Stats() SinkStats {
	return SinkStats{Sent: s.sent.Load(), Failed: s.failed.Load()}
}

func appendValue(msg *osc.Message, value any) error {
	switch v := value.(type) {
	case int:
		msg.Append(int32(v))
	case int32:
		msg.Append(v)
	case int64:
		msg.Append(v)
	case float64:
		msg.Append(float32(v))
	case float32:
		msg.Append(v)
	case []float64:
		for _, f := range v {
			msg.Append(float32(f))
		}
	case []int:
		for _, i := range v {
			msg.Append(int32(i))
		}
	default:
		return fmt.Errorf("unsupported payload %T", value)
	}
	return nil
}
