package completion

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// Config carries the tunables of a completion run.
type Config struct {
	// MaxSubpathsFilter caps the number of pathways kept after global
	// ranking; zero or less keeps everything.
	MaxSubpathsFilter int `mapstructure:"max_subpaths_filter"`

	// LowerFluxBound and UpperFluxBound are applied to every assembled
	// reaction.
	LowerFluxBound float64 `mapstructure:"lower_flux_bound"`
	UpperFluxBound float64 `mapstructure:"upper_flux_bound"`

	// Workers bounds the number of master pathways processed concurrently;
	// zero or less means one worker per CPU.
	Workers int `mapstructure:"workers"`
}

// RunResult is the outcome of one completion run: the selected pathways in
// ascending score order plus the run counters.
type RunResult struct {
	RunID    string
	Summary  Summary
	Pathways []*pathway.Pathway
	Duration time.Duration
}

// ResultPublisher announces a finished run to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, result *RunResult) error
}

// Deps bundles the ports a Service needs.  Metrics and Publisher are
// optional; everything else must be set.
type Deps struct {
	Pathways  transformation.PathwaySource
	ECNumbers transformation.ECSource
	Sink      transformation.SinkSource
	Compounds transformation.CompoundSource
	Scores    transformation.RuleScoreTable
	Rebuild   transformation.RebuildService
	Registry  *pathway.Registry
	Logger    logging.Logger
	Metrics   *prometheus.Metrics
	Publisher ResultPublisher
}

// Service runs the completion pipeline end to end: read the sources,
// complete every transformation against the rebuild service, expand and
// assemble sub-pathways per master pathway, deduplicate, and select the
// global top-K.
type Service struct {
	cfg  Config
	deps Deps

	completer *transformation.Completer
	assembler *Assembler
	logger    logging.Logger
}

// NewService constructs a Service.
func NewService(cfg Config, deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	logger := deps.Logger.Named("completion")
	return &Service{
		cfg:       cfg,
		deps:      deps,
		completer: transformation.NewCompleter(deps.Rebuild, deps.Registry, deps.Logger),
		assembler: NewAssembler(deps.Registry, deps.Compounds, deps.Scores,
			cfg.LowerFluxBound, cfg.UpperFluxBound, deps.Logger),
		logger: logger,
	}
}

// Run executes one completion run.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	s.logger.Info("completion run starting", logging.String("run_id", runID))

	// Source adapters attach their own error codes; pass them through.
	masters, transfos, err := s.deps.Pathways.Read(ctx)
	if err != nil {
		return nil, err
	}
	if len(masters) == 0 {
		return nil, errors.New(errors.ErrCodeSourceEmpty, "pathway source yields no master pathways")
	}

	ecByTransfo, err := s.deps.ECNumbers.ECNumbers(ctx)
	if err != nil {
		return nil, err
	}
	sink, err := s.deps.Sink.Sink(ctx)
	if err != nil {
		return nil, err
	}

	// Completion queries go out sequentially so the rebuild service sees at
	// most one in-flight request per run; the fan-out below is CPU-bound.
	for _, id := range sortedTransfoIDs(transfos) {
		if err := s.completer.Complete(ctx, transfos[id], ecByTransfo[id]); err != nil {
			return nil, err
		}
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	lists := make([]*pathway.RankedList, len(masters))
	generated := make([]int, len(masters))
	empty := make([]bool, len(masters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range masters {
		i := i
		g.Go(func() error {
			return s.processMaster(gctx, masters[i], transfos, sink, &lists[i], &generated[i], &empty[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := Summary{}
	for i := range masters {
		summary.Generated += generated[i]
		summary.Unique += lists[i].Len()
		if empty[i] {
			summary.EmptyMasterPathways++
		}
	}
	selected := selectTopK(lists, s.cfg.MaxSubpathsFilter)
	summary.Selected = len(selected)

	result := &RunResult{
		RunID:    runID,
		Summary:  summary,
		Pathways: selected,
		Duration: time.Since(start),
	}

	s.logger.Info("completion run finished",
		logging.String("run_id", runID),
		logging.Int("master_pathways", len(masters)),
		logging.Int("generated", summary.Generated),
		logging.Int("unique", summary.Unique),
		logging.Int("selected", summary.Selected),
		logging.Int("empty_master_pathways", summary.EmptyMasterPathways),
		logging.Duration("duration", result.Duration),
	)
	s.deps.Metrics.ObserveRun(summary.Generated, summary.Unique, summary.Selected,
		summary.EmptyMasterPathways, result.Duration.Seconds())

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.Publish(ctx, result); err != nil {
			// The run itself succeeded; a lost announcement is recoverable.
			s.logger.Warn("publishing run result failed",
				logging.String("run_id", runID), logging.Err(err))
		}
	}

	return result, nil
}

// processMaster expands, assembles, and deduplicates every sub-pathway of one
// master pathway into its own ranked list.
func (s *Service) processMaster(ctx context.Context, master transformation.MasterPathway, transfos map[string]*transformation.Transformation, sink map[string]struct{}, list **pathway.RankedList, generated *int, empty *bool) error {
	*list = pathway.NewRankedList()

	candLists, err := candidateLists(master, transfos)
	if err != nil {
		return err
	}
	combos := crossProduct(candLists)
	if len(combos) == 0 {
		*empty = true
		s.logger.Info("master pathway yields no sub-pathways",
			logging.Int("master_pathway", master.ID))
		return nil
	}

	for subIdx, combo := range combos {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := fmt.Sprintf("%03d_%04d", master.ID, subIdx+1)
		pw, err := s.assembler.Assemble(ctx, id, combo, transfos, sink)
		if err != nil {
			return err
		}
		dedupeInsert(*list, pw)
	}
	*generated = len(combos)
	return nil
}

func sortedTransfoIDs(transfos map[string]*transformation.Transformation) []string {
	ids := make([]string, 0, len(transfos))
	for id := range transfos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
