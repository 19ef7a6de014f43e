package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/RetroPath-Completion/internal/application/completion"
	"github.com/turtacn/RetroPath-Completion/internal/config"
	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/database/postgres"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/database/redis"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/source"
)

// runOptions holds the run subcommand's flags.  Non-empty values override
// the corresponding config file settings.
type runOptions struct {
	Pathways    string
	Compounds   string
	MetNet      string
	Sink        string
	Rebuild     string
	Scores      string
	MaxSubpaths int
	Workers     int
	OutPath     string
}

// NewRunCmd creates the "run" subcommand.
func NewRunCmd() *cobra.Command {
	opts := &runOptions{MaxSubpaths: -1, Workers: -1}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run pathway completion over a retrosynthesis result set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Pathways, "pathways", "", "retrosynthesis pathway CSV")
	f.StringVar(&opts.Compounds, "compounds", "", "compound structure TSV")
	f.StringVar(&opts.MetNet, "metnet", "", "metabolic network CSV carrying EC numbers")
	f.StringVar(&opts.Sink, "sink", "", "sink species CSV")
	f.StringVar(&opts.Rebuild, "rebuild", "", "precomputed rebuild JSON")
	f.StringVar(&opts.Scores, "scores", "", "rule score TSV")
	f.IntVar(&opts.MaxSubpaths, "max-subpaths", -1, "pathways kept after ranking; 0 keeps everything")
	f.IntVar(&opts.Workers, "workers", -1, "concurrent master pathways; 0 means one per CPU")
	f.StringVar(&opts.OutPath, "out", "", "write the selected pathways as JSON to this file")

	return cmd
}

func runCompletion(cmd *cobra.Command, opts *runOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	logger := cliCtx.Logger

	mergeRunFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := pathway.NewRegistry()
	if _, err := source.LoadCompounds(cfg.Input.Compounds, registry, logger); err != nil {
		return err
	}

	rebuild, err := source.NewFileRebuildService(cfg.Input.Rebuild, logger)
	if err != nil {
		return err
	}

	deps := completion.Deps{
		Pathways:  source.NewPathwayCSVReader(cfg.Input.Pathways, logger),
		Sink:      source.NewSinkCSVReader(cfg.Input.Sink, logger),
		Rebuild:   rebuild,
		Registry:  registry,
		Logger:    logger,
		ECNumbers: ecSource(cfg, logger),
	}

	deps.Compounds, err = compoundSource(cfg, logger)
	if err != nil {
		return err
	}
	deps.Scores, err = scoreTable(cmd, cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		defer publisher.Close()
		deps.Publisher = publisher
	}

	svc := completion.NewService(completion.Config{
		MaxSubpathsFilter: cfg.Completion.MaxSubpathsFilter,
		LowerFluxBound:    cfg.Completion.LowerFluxBound,
		UpperFluxBound:    cfg.Completion.UpperFluxBound,
		Workers:           cfg.Completion.Workers,
	}, deps)

	result, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.OutPath != "" {
		if err := writeResultFile(opts.OutPath, result); err != nil {
			return err
		}
	}

	return PrintResult(cmd, newRunView(result))
}

// mergeRunFlags overlays the run flags onto the loaded configuration.
func mergeRunFlags(cfg *config.Config, opts *runOptions) {
	if opts.Pathways != "" {
		cfg.Input.Pathways = opts.Pathways
	}
	if opts.Compounds != "" {
		cfg.Input.Compounds = opts.Compounds
	}
	if opts.MetNet != "" {
		cfg.Input.MetNet = opts.MetNet
	}
	if opts.Sink != "" {
		cfg.Input.Sink = opts.Sink
	}
	if opts.Rebuild != "" {
		cfg.Input.Rebuild = opts.Rebuild
	}
	if opts.Scores != "" {
		cfg.Input.Scores = opts.Scores
	}
	if opts.MaxSubpaths >= 0 {
		cfg.Completion.MaxSubpathsFilter = opts.MaxSubpaths
	}
	if opts.Workers >= 0 {
		cfg.Completion.Workers = opts.Workers
	}
}

// ecSource returns the metabolic network reader, or an empty source when no
// network file is configured.
func ecSource(cfg *config.Config, logger logging.Logger) transformation.ECSource {
	if cfg.Input.MetNet == "" {
		return emptyECSource{}
	}
	return source.NewMetNetECReader(cfg.Input.MetNet, logger)
}

// compoundSource returns the Redis compound cache when enabled, or an empty
// source otherwise; unseen species then degrade to placeholders.
func compoundSource(cfg *config.Config, logger logging.Logger) (transformation.CompoundSource, error) {
	if !cfg.Redis.Enabled {
		return transformation.StaticCompoundSource{}, nil
	}
	cache, err := redis.NewCompoundCache(redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// scoreTable returns the PostgreSQL score store when enabled, or the
// file-backed table otherwise.
func scoreTable(cmd *cobra.Command, cfg *config.Config, logger logging.Logger) (transformation.RuleScoreTable, error) {
	if cfg.Postgres.Enabled {
		store, err := postgres.NewScoreStore(cmd.Context(), postgres.Config{DSN: cfg.Postgres.DSN}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	table, err := source.NewScoreTSVReader(cfg.Input.Scores, logger).Load()
	if err != nil {
		return nil, err
	}
	return table, nil
}

// reactionView is the JSON shape of one reaction in the result file.
type reactionView struct {
	ID          string         `json:"id"`
	Index       int            `json:"index"`
	EC          []string       `json:"ec,omitempty"`
	Reactants   map[string]int `json:"reactants"`
	Products    map[string]int `json:"products"`
	RuleIDs     []string       `json:"rule_ids"`
	TemplateIDs []string       `json:"template_ids"`
	RuleScore   float64        `json:"rule_score"`
	LowerFlux   float64        `json:"lower_flux_bound"`
	UpperFlux   float64        `json:"upper_flux_bound"`
}

// pathwayView is the JSON shape of one selected pathway.
type pathwayView struct {
	ID               string         `json:"id"`
	Score            float64        `json:"score"`
	TargetID         string         `json:"target_id,omitempty"`
	Reactions        []reactionView `json:"reactions"`
	TrunkSpecies     []string       `json:"trunk_species"`
	CompletedSpecies []string       `json:"completed_species"`
	SinkSpecies      []string       `json:"sink_species"`
}

func newPathwayView(pw *pathway.Pathway) pathwayView {
	view := pathwayView{
		ID:               pw.ID,
		Score:            pw.MeanRuleScore(),
		TargetID:         pw.TargetID(),
		TrunkSpecies:     pw.TrunkSpecies(),
		CompletedSpecies: pw.CompletedSpecies(),
		SinkSpecies:      pw.SinkSpecies(),
	}
	for _, rxn := range pw.Reactions() {
		view.Reactions = append(view.Reactions, reactionView{
			ID:          rxn.ID,
			Index:       rxn.Index,
			EC:          rxn.EC,
			Reactants:   rxn.Reactants,
			Products:    rxn.Products,
			RuleIDs:     rxn.RuleIDs,
			TemplateIDs: rxn.TemplateIDs,
			RuleScore:   rxn.RuleScore,
			LowerFlux:   rxn.LowerFluxBound,
			UpperFlux:   rxn.UpperFluxBound,
		})
	}
	return view
}

// resultFile is the JSON document written by --out.
type resultFile struct {
	RunID    string             `json:"run_id"`
	Summary  completion.Summary `json:"summary"`
	Pathways []pathwayView      `json:"pathways"`
}

func writeResultFile(path string, result *completion.RunResult) error {
	doc := resultFile{RunID: result.RunID, Summary: result.Summary}
	for _, pw := range result.Pathways {
		doc.Pathways = append(doc.Pathways, newPathwayView(pw))
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// runView is the terminal rendering of a finished run.
type runView struct {
	result *completion.RunResult
}

func newRunView(result *completion.RunResult) *runView {
	return &runView{result: result}
}

func (v *runView) String() string {
	s := v.result.Summary
	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s finished in %s\n", v.result.RunID, v.result.Duration.Round(0))
	fmt.Fprintf(&sb, "  generated: %d  unique: %d  selected: %d  empty masters: %d\n",
		s.Generated, s.Unique, s.Selected, s.EmptyMasterPathways)
	for _, pw := range v.result.Pathways {
		fmt.Fprintf(&sb, "  %s  score=%.4f  reactions=%d\n", pw.ID, pw.MeanRuleScore(), len(pw.Reactions()))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// MarshalJSON renders the view for --output json.
func (v *runView) MarshalJSON() ([]byte, error) {
	doc := resultFile{RunID: v.result.RunID, Summary: v.result.Summary}
	for _, pw := range v.result.Pathways {
		doc.Pathways = append(doc.Pathways, newPathwayView(pw))
	}
	return json.Marshal(doc)
}

// TableHeaders implements the table output contract.
func (v *runView) TableHeaders() []string {
	return []string{"PATHWAY", "SCORE", "REACTIONS", "TARGET", "SINK"}
}

// TableRows implements the table output contract.
func (v *runView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.result.Pathways))
	for _, pw := range v.result.Pathways {
		rows = append(rows, []string{
			pw.ID,
			fmt.Sprintf("%.4f", pw.MeanRuleScore()),
			fmt.Sprintf("%d", len(pw.Reactions())),
			pw.TargetID(),
			strings.Join(pw.SinkSpecies(), ","),
		})
	}
	return rows
}

type emptyECSource struct{}

func (emptyECSource) ECNumbers(context.Context) (map[string][]string, error) { return nil, nil }
