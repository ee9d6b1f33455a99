package service

import (
	"io"
	"log/slog"
)

// UseCaseObserver receives one event per completed service use case.
type UseCaseObserver interface {
	OnUseCase(name string, durMs int64, err error)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) OnUseCase(string, int64, error) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events to w as slog text lines.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) OnUseCase(name string, durMs int64, err error) {
	if err != nil {
		o.logger.Error("use_case", "name", name, "duration_ms", durMs, "error", err.Error())
		return
	}
	o.logger.Info("use_case", "name", name, "duration_ms", durMs)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
