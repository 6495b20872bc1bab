package zap

import (
	"github.com/oasaleh/FusionCache"
	"go.uber.org/zap"
)

// Logger adapts a zap.Logger to the accessor's Logger interface.
type Logger struct{ L *zap.Logger }

var _ fusioncache.Logger = Logger{}

func (z Logger) Debug(msg string, f fusioncache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f fusioncache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f fusioncache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f fusioncache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f fusioncache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
