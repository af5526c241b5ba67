package writer

import (
	"context"

	"github.com/wudi/pdfreport/ir/raw"
	"github.com/wudi/pdfreport/observability"
)

type loggingInterceptor struct {
	log observability.Logger
}

// LoggingInterceptor logs each object record at debug level and the
// totals of the write at info level.
func LoggingInterceptor(l observability.Logger) Interceptor {
	if l == nil {
		l = observability.NopLogger{}
	}
	return loggingInterceptor{log: l}
}

func (loggingInterceptor) BeforeWrite(context.Context, raw.ObjectRef, raw.Object) error { return nil }

func (i loggingInterceptor) AfterWrite(_ context.Context, ref raw.ObjectRef, obj raw.Object, offset, n int64) error {
	i.log.Debug("writer: object written",
		observability.Int("id", ref.Num),
		observability.String("type", obj.Type()),
		observability.Int64("offset", offset),
		observability.Int64("bytes", n))
	return nil
}

func (i loggingInterceptor) Complete(_ context.Context, s Summary) {
	i.log.Info("writer: file written",
		observability.Int("objects", s.Objects),
		observability.Int("pages", s.Pages),
		observability.Int64("bytes", s.Bytes),
		observability.Int64("xref", s.XRefOffset))
}
