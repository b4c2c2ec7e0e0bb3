package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/commune-stats/pkg/config"
	"github.com/anrid/commune-stats/pkg/stats"
)

var (
	verbose bool
	asJSON  bool
	dump    bool
	lang    string
	cfgPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "show [document]",
	Short: "Print the indicators of a provincial statistics document",
	Long: `Loads a JSON, YAML or workbook document, merges the per-domain tables
into one record per commune and prints the derived indicators: priority
ranking, per-capita rates, gender ratios, stacked totals and province
aggregates.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: show,
}

func show(cmd *cobra.Command, args []string) error {
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	path := cfg.Document
	if len(args) == 1 {
		path = args[0]
	}

	doc, err := stats.ReadDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no document found at '%s', run the create command in `cmd/create` first: %w", path, err)
		}
		return err
	}

	reg := stats.Assemble(doc, stats.WithLogger(logger))
	logger.Info("Registry assembled", zap.String("document", path), zap.Int("communes", reg.Len()))

	switch {
	case asJSON:
		return stats.Dump(reg)
	case dump:
		spew.Dump(reg.Subdivisions())
		return nil
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language '%s': %w", lang, err)
	}
	report(os.Stdout, message.NewPrinter(tag), reg, cfg.Scoring)

	return nil
}

func report(w io.Writer, p *message.Printer, reg *stats.Registry, sc stats.Scoring) {
	p.Fprintf(w, "\nCommunes: %d\n", reg.Len())

	p.Fprintf(w, "\n\nPriority Index (health x %.f + schools x %.f + activity rate):\n\n", sc.HealthWeight, sc.EducationWeight)
	for i, e := range sc.Ranking(reg) {
		p.Fprintf(w, "%02d. %-20s  --  %7.1f  %-8s (health %5.f, education %5.f, employment %5.1f)\n",
			i+1, stats.DisplayName(e.Commune), e.Score, e.Tier, e.Health, e.Education, e.Employment)
	}

	p.Fprintf(w, "\n\nBy Commune:\n\n")
	p.Fprintf(w, "%-20s  %10s  %8s  %8s  %12s  %12s  %10s\n",
		"Commune", "Population", "ESSP", "Schools", "Schools/10k", "Density", "Connection")
	for _, s := range reg.Subdivisions() {
		p.Fprintf(w, "%-20s  %10.f  %8.f  %8.f  %12.2f  %12.2f  %9.1f%%\n",
			s.ShortName(),
			s.Number(stats.Demographics, stats.FieldPopulation),
			s.Number(stats.Health, stats.FieldHealthFacilities),
			stats.SchoolCount(s),
			stats.SchoolsPerCapita(s),
			stats.Density(s),
			stats.ConnectionRate(s),
		)
	}

	p.Fprintf(w, "\n\nHealth Staff (stacked):\n\n")
	for _, st := range stats.Stacked(reg, stats.HealthStaff) {
		p.Fprintf(w, "%-20s ", stats.DisplayName(st.Commune))
		for _, b := range st.Bands {
			p.Fprintf(w, " %s %.f-%.f", b.Category, b.Lower, b.Upper)
		}
		p.Fprintf(w, "  (total %.f)\n", st.Total)
	}

	p.Fprintf(w, "\n\nHealth Infrastructure (stacked):\n\n")
	for _, st := range stats.Stacked(reg, stats.HealthInfrastructure) {
		p.Fprintf(w, "%-20s ", stats.DisplayName(st.Commune))
		for _, b := range st.Bands {
			p.Fprintf(w, " %s %.f", b.Category, b.Value)
		}
		p.Fprintf(w, "  (total %.f)\n", st.Total)
	}

	p.Fprintf(w, "\n\nHouseholds and Water Production:\n\n")
	p.Fprintf(w, "%-20s  %10s  %10s  %10s  %14s\n", "Commune", "Households", "Size", "Stations", "Capacity (l/s)")
	for _, s := range reg.Subdivisions() {
		p.Fprintf(w, "%-20s  %10.f  %10.2f  %10.f  %14.1f\n",
			s.ShortName(),
			s.Number(stats.Demographics, stats.FieldHouseholds),
			stats.HouseholdSize(s),
			s.Number(stats.Water, stats.FieldProductionFacilities),
			stats.ProductionCapacity(s),
		)
	}

	p.Fprintf(w, "\n\nEnrollment by Level:\n\n")
	for _, e := range stats.Enrollments(reg, stats.SchoolLevels) {
		p.Fprintf(w, "%-12s  --  %8.f  (girls %7.f, boys %7.f, parity %.2f)\n", e.Level, e.Total, e.Girls, e.Boys, e.Ratio)
	}

	p.Fprintf(w, "\n\nPopulation by Gender:\n\n")
	for _, g := range stats.GenderSplits(reg) {
		p.Fprintf(w, "%-20s  --  men %8.f  women %8.f  ratio %.3f\n", stats.DisplayName(g.Commune), g.Male, g.Female, g.Ratio)
	}

	p.Fprintf(w, "\n\nWater and Sanitation Priorities:\n\n")
	for i, wp := range sc.WaterPriorities(reg) {
		p.Fprintf(w, "%02d. %-20s  --  %5.1f  %-7s (coverage %.f%%, connection %.1f%%)\n",
			i+1, stats.DisplayName(wp.Commune), wp.Score, wp.Urgency, wp.Coverage, wp.ConnectionRate)
	}

	active := stats.ActivePopulationOf(reg)
	p.Fprintf(w, "\n\nActive Population: %.f employed, ~%.f unemployed (mean unemployment %.1f%%)\n",
		active.Employed, active.Unemployed, active.MeanUnemployment)
	p.Fprintf(w, "Total Population : %.f\n", stats.Sum(reg, stats.Demographics, stats.FieldPopulation))
	p.Fprintf(w, "Mean Activity    : %.1f%%\n", stats.Mean(reg, stats.Employment, stats.FieldActivityRate))

	if r, ok := reg.Province(stats.Health); ok {
		p.Fprintf(w, "Province ESSP    : %.f, ambulances %.f\n", r.Number("ESSP"), r.Number(stats.FieldAmbulances))
	}
	p.Fprintln(w)
}

func main() {
	config.LoadEnv(".env.local", ".env")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the registry as a JSON snapshot")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "Dump the registry for debugging")
	rootCmd.Flags().StringVar(&lang, "lang", "en", "Language used to format numbers")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Configuration file (default $COMMUNE_STATS_CONFIG or commune-stats.yaml)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
