// Command kpdsim runs a kidney-paired-donation exchange simulation over a
// fixed pool of pairs and non-directed donors, writing one arrangement,
// transplant, and population CSV per run plus a text simulation log.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/crossmatch"
	"github.com/kpdsim/engine/datasource"
	"github.com/kpdsim/engine/matchrun"
	"github.com/kpdsim/engine/record"
	"github.com/kpdsim/engine/rng"
	"github.com/kpdsim/engine/simlog"
	"github.com/kpdsim/engine/simulation"
)

func main() {
	configPath := flag.String("config", "", "path to a key=value configuration file (defaults used if omitted)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("kpdsim: %v", err)
	}
}

func run(configPath string) error {
	params, err := loadParams(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	equiv, survivalTable, kpdRows, err := loadInputs(params)
	if err != nil {
		return fmt.Errorf("loading input tables: %w", err)
	}

	outDir := filepath.Join(params.OutputFolder, params.OutputSubfolder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	out, err := openOutputs(outDir)
	if err != nil {
		return fmt.Errorf("opening output files: %w", err)
	}
	defer func() {
		out.flush()
		out.close()
	}()

	logger := simlog.New(lineWriter{sink: out.log})

	policy := crossmatch.Policy{
		AllowDesensitization:         params.AllowDesensitization,
		ReserveODonorsForOCandidates: params.ReserveODonorsForOCandidates,
	}
	baseScorer := matchrun.Scorer{
		Scheme:   matchrun.UtilityScheme(params.UtilityScheme),
		PRABonus: matchrun.PRAAdvantage{Cutoff: params.PRAAdvantageCutoff, Value: params.PRAAdvantageValue},
	}
	scorer := record.NewScorer(baseScorer, survivalTable)
	survivalScorer := record.NewSurvivalScorer(survivalTable)

	for i := 1; i <= params.NumIterations; i++ {
		if err := runIteration(i, params, kpdRows, equiv, policy, survivalScorer, scorer, logger, out); err != nil {
			if errors.Is(err, simulation.ErrIterationAborted) {
				// Simulation.protectMatchRun/protectTransplantStage already
				// logged the panic through this iteration's logger; move on.
				continue
			}
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}

	return nil
}

func loadParams(path string) (config.Parameters, error) {
	if path == "" {
		return config.Defaults(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config.Parameters{}, err
	}
	defer f.Close()

	return config.Load(f)
}

// loadInputs reads the three input tables every iteration needs: the HLA
// equivalence dictionary, the survival coefficient table, and the KPD
// pairs/NDDs rows that seed iteration 0's pool. HLAFrequency, deceased
// donors, and waitlist candidates are auxiliary tables this driver does not
// yet consume (see DESIGN.md) and are left unread.
func loadInputs(params config.Parameters) (crossmatch.EquivalenceDictionary, map[string]datasource.SurvivalParameterRow, []datasource.KPDRow, error) {
	equivFile, err := os.Open(filepath.Join(params.InputFolder, params.FileHLADictionary))
	if err != nil {
		return nil, nil, nil, err
	}
	defer equivFile.Close()
	equivRows, err := datasource.LoadHLAEquivalence(equivFile)
	if err != nil {
		return nil, nil, nil, err
	}

	survivalFile, err := os.Open(filepath.Join(params.InputFolder, params.FileSurvivalParameters))
	if err != nil {
		return nil, nil, nil, err
	}
	defer survivalFile.Close()
	survivalTable, err := datasource.LoadSurvivalParameters(survivalFile)
	if err != nil {
		return nil, nil, nil, err
	}

	kpdFile, err := os.Open(filepath.Join(params.InputFolder, params.FileKPDData))
	if err != nil {
		return nil, nil, nil, err
	}
	defer kpdFile.Close()
	kpdRows, err := datasource.LoadKPDPairs(kpdFile)
	if err != nil {
		return nil, nil, nil, err
	}

	return crossmatch.EquivalenceDictionary(equivRows), survivalTable, kpdRows, nil
}

// runIteration rebuilds the pool from the fixed input rows, records its
// matches and status timelines, then drives one Simulation to completion,
// writing its outputs to the shared sinks. Every iteration starts from the
// same rows: KPDSimulation::resetIteration rebuilds state wholesale rather
// than carrying it forward.
func runIteration(
	iteration int,
	params config.Parameters,
	kpdRows []datasource.KPDRow,
	equiv crossmatch.EquivalenceDictionary,
	policy crossmatch.Policy,
	survivalScorer record.SurvivalScorer,
	scorer matchrun.Scorer,
	logger *simlog.Logger,
	out *outputs,
) error {
	pool, err := record.BuildPool(kpdRows, 0)
	if err != nil {
		return fmt.Errorf("building pool: %w", err)
	}
	handles := pool.Handles()

	streams := rng.NewStreams(params.Seeds, iteration)
	if err := record.BuildMatches(pool, handles, equiv, policy, survivalScorer, streams.Get(rng.PurposeMatch)); err != nil {
		return fmt.Errorf("building matches: %w", err)
	}
	record.ApplyPlanningModel(pool, params.PlanningModel)
	record.GenerateTimelines(pool, handles, params, streams.Get(rng.PurposeStatus))

	sim := simulation.New(pool, params, scorer, iteration, logger)
	result, runErr := sim.RunIteration()

	for _, a := range result.Arrangements {
		if err := out.arrangements.WriteRow(pool, a); err != nil {
			return fmt.Errorf("writing arrangement row: %w", err)
		}
	}
	for _, t := range result.Transplants {
		if err := out.transplants.WriteRow(pool, t, iteration); err != nil {
			return fmt.Errorf("writing transplant row: %w", err)
		}
	}
	for _, h := range handles {
		node, err := pool.Node(h)
		if err != nil {
			return fmt.Errorf("resolving node for population row: %w", err)
		}
		if err := out.population.WriteRow(iteration, node); err != nil {
			return fmt.Errorf("writing population row: %w", err)
		}
	}

	return runErr
}

type outputs struct {
	arrangements *datasource.ArrangementsSink
	transplants  *datasource.TransplantsSink
	population   *datasource.PopulationSink
	log          *datasource.LogSink

	files []io.Closer
}

func openOutputs(dir string) (*outputs, error) {
	out := &outputs{}

	arrFile, err := os.Create(filepath.Join(dir, "Arrangements.csv"))
	if err != nil {
		return nil, err
	}
	out.files = append(out.files, arrFile)
	out.arrangements = datasource.NewArrangementsSink(arrFile)

	transFile, err := os.Create(filepath.Join(dir, "Transplants.csv"))
	if err != nil {
		return nil, err
	}
	out.files = append(out.files, transFile)
	out.transplants = datasource.NewTransplantsSink(transFile)

	popFile, err := os.Create(filepath.Join(dir, "Population.csv"))
	if err != nil {
		return nil, err
	}
	out.files = append(out.files, popFile)
	out.population = datasource.NewPopulationSink(popFile)

	logFile, err := os.Create(filepath.Join(dir, "simulation.log"))
	if err != nil {
		return nil, err
	}
	out.files = append(out.files, logFile)
	out.log = datasource.NewLogSink(logFile)

	return out, nil
}

func (o *outputs) flush() error {
	if err := o.arrangements.Flush(); err != nil {
		return err
	}
	if err := o.transplants.Flush(); err != nil {
		return err
	}
	return o.population.Flush()
}

func (o *outputs) close() {
	for _, f := range o.files {
		f.Close()
	}
}

// lineWriter adapts datasource.LogSink, whose Writeln takes a pre-split
// line, to the plain io.Writer simlog.New wraps in a log.Logger: each
// Write call already carries one trailing newline from log.Logger's own
// formatting, so Write strips it before handing the line to Writeln, which
// appends its own.
type lineWriter struct {
	sink *datasource.LogSink
}

func (w lineWriter) Write(p []byte) (int, error) {
	line := string(p)
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if err := w.sink.Writeln(line); err != nil {
		return 0, err
	}
	return len(p), nil
}
