package reports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/equipment-tracker/internal/exports"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/report"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// Roster is the canonical roster reports are built from.
type Roster interface {
	Players() []roster.Player
	Resolver() *roster.Resolver
}

// Service builds reports over the canonical roster and exports them.
type Service struct {
	roster  Roster
	sink    exports.Sink
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewService constructs a Service. sink may be nil when exports are disabled.
func NewService(r Roster, sink exports.Sink, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		roster:  r,
		sink:    sink,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// MissingPlayer is one row of the missing-equipment report.
type MissingPlayer struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Number       *int          `json:"number,omitempty"`
	Grade        string        `json:"grade"`
	Period       string        `json:"period,omitempty"`
	Missing      []roster.Item `json:"missingItems"`
	MissingCount int           `json:"missingCount"`
	Message      string        `json:"message"`
}

// Missing is the missing-equipment report.
type Missing struct {
	Players        []MissingPlayer `json:"players"`
	TotalPlayers   int             `json:"totalPlayers"`
	Complete       int             `json:"complete"`
	Incomplete     int             `json:"incomplete"`
	TotalMissing   int             `json:"totalMissing"`
	CompletionRate int             `json:"completionRate"`
}

// Build evaluates the current roster.
func (s *Service) Build() report.Report {
	return report.Build(s.roster.Players(), s.roster.Resolver())
}

// Missing lists incomplete players, most missing first, with reminder messages.
func (s *Service) Missing() Missing {
	r := s.Build()
	out := Missing{
		Players:        make([]MissingPlayer, 0, len(r.Incomplete)),
		TotalPlayers:   r.Total(),
		Complete:       len(r.Complete),
		Incomplete:     len(r.Incomplete),
		TotalMissing:   r.TotalMissing,
		CompletionRate: r.Rate(),
	}
	for _, e := range r.Incomplete {
		out.Players = append(out.Players, MissingPlayer{
			ID:           e.Player.ID,
			Name:         e.Player.Name,
			Number:       e.Player.Number,
			Grade:        e.Player.Grade,
			Period:       e.Player.Period,
			Missing:      e.Missing,
			MissingCount: e.MissingCount(),
			Message:      report.Message(e.Player.Name, e.Missing),
		})
	}
	return out
}

// Stats returns the statistics panel figures.
func (s *Service) Stats() report.Stats {
	return report.ComputeStats(s.roster.Players(), s.roster.Resolver())
}

// CSV renders the inventory report and its download name.
func (s *Service) CSV() ([]byte, string, error) {
	now := s.now()
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, s.Build(), now); err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), report.Filename(now), nil
}

// Export renders the report and saves it to the configured sink.
func (s *Service) Export(ctx context.Context) (string, error) {
	if s.sink == nil {
		return "", exports.ErrNotConfigured
	}
	data, name, err := s.CSV()
	if err != nil {
		return "", err
	}
	location, err := s.sink.Save(ctx, name, data)
	s.metrics.RecordExport(s.sink.Name(), err)
	if err != nil {
		logging.Error(s.logger, "report export failed", err, logging.FieldSink, s.sink.Name())
		return "", fmt.Errorf("export report: %w", err)
	}
	logging.Info(s.logger, "report exported",
		logging.FieldSink, s.sink.Name(),
		logging.FieldLocation, location,
	)
	return location, nil
}
