package telemetry

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Profile label keys attached to HTTP work
const (
	LabelRoute       = "route"
	LabelMethod      = "method"
	LabelWorkspaceID = "workspace_id"
)

// Profiler is a started Pyroscope session. The zero value is a disabled profiler.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	once     sync.Once
}

// StartProfiler starts continuous profiling against server. An empty server disables profiling.
func StartProfiler(applicationName, server string, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if server == "" {
		return p, nil
	}

	tags := map[string]string{}
	if host, err := os.Hostname(); err == nil {
		tags["hostname"] = host
	}
	prof, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   server,
		Logger:          pyroscopeLogger{logger.Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	p.profiler = prof
	logger.Info("Profiler started", zap.String("server", server))
	return p, nil
}

// Enabled reports whether profiles are being sent
func (p *Profiler) Enabled() bool {
	return p != nil && p.profiler != nil
}

// Stop flushes and stops the profiler
func (p *Profiler) Stop() error {
	if !p.Enabled() {
		return nil
	}
	var err error
	p.once.Do(func() { err = p.profiler.Stop() })
	return err
}

// WithLabels runs fn with pprof labels so its samples can be filtered in Pyroscope.
// Empty values are dropped.
func WithLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	kv := make([]string, 0, len(labels)*2)
	for k, v := range labels {
		if v != "" {
			kv = append(kv, k, v)
		}
	}
	if len(kv) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(kv...), fn)
}

type pyroscopeLogger struct {
	s *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
