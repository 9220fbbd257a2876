package zap

import (
	"github.com/unkn0wn-root/binser"
	"go.uber.org/zap"
)

type ZapLogger struct{ L *zap.Logger }

var _ binser.Logger = ZapLogger{}

func (z ZapLogger) Debug(msg string, f binser.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f binser.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f binser.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f binser.Fields) { z.L.Error(msg, zf(f)...) }

func (z ZapLogger) With(f binser.Fields) binser.Logger {
	return ZapLogger{L: z.L.With(zf(f)...)}
}

func zf(f binser.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
