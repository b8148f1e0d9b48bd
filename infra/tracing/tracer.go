package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
)

type logrusJaegerLogger struct{}

func (logrusJaegerLogger) Error(msg string) {
	logrus.Error(msg)
}

func (logrusJaegerLogger) Infof(msg string, args ...interface{}) {
	logrus.Infof(msg, args...)
}

// InitGlobalTracer builds a jaeger tracer from the JAEGER_* environment and installs it globally.
// JAEGER_DISABLED=true yields a no-op tracer.
func InitGlobalTracer(serviceName string) (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(logrusJaegerLogger{}), jaegercfg.Metrics(metrics.NullFactory))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
