// internal/app/run.go
package app

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"snpscan/internal/appcore"
	"snpscan/internal/cliutil"
	"snpscan/internal/config"
	"snpscan/internal/output"
)

type runFlags struct {
	configPath      string
	tables          []string
	classes         []int
	format          string
	noHeader        bool
	metricsFile     string
	noMatchExitCode int
}

func newRunCmd(g *globals) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [fasta...]",
		Short: "Run the SNP hotspot pipeline over FASTA and tabular inputs",
		Example: `  snpscan run aligned.fa.gz
  snpscan run --tsv human.txt --classes 0,1 -o json
  snpscan run -c snpscan.yaml --uniqueness permissive 'panel/*.fa'`,
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file (flags override it)")
	fs.StringSliceVar(&f.tables, "tsv", nil, "tab-delimited input with sequence and class columns (repeatable)")
	fs.IntSliceVar(&f.classes, "classes", []int{0, 1}, "class labels kept from tabular input")
	fs.StringVarP(&f.format, "output", "o", output.FormatText, "output format: text|json|jsonl|records")
	fs.BoolVar(&f.noHeader, "no-header", false, "omit column headers in text output")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	fs.IntVar(&f.noMatchExitCode, "no-match-exit-code", appcore.ExitNoMatch, "exit code when no hotspot is found")
	overrides := bindConfigFlags(fs)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fasta, err := cliutil.ExpandPositionals(args)
		if err != nil {
			return appcore.Exit(appcore.ExitUsage, err)
		}
		tables, err := cliutil.ExpandPositionals(f.tables)
		if err != nil {
			return appcore.Exit(appcore.ExitUsage, err)
		}
		if len(fasta)+len(tables) == 0 {
			return appcore.Exit(appcore.ExitUsage, errors.New("no input: give FASTA files or --tsv"))
		}
		if cliutil.CountStdin(fasta, tables) > 1 {
			return appcore.Exit(appcore.ExitUsage, errors.New("stdin (-) may be used only once"))
		}

		cfg, err := loadConfig(f.configPath)
		if err != nil {
			return appcore.Exit(appcore.ExitUsage, err)
		}
		overrides(&cfg)
		if fs.Changed("classes") || f.configPath == "" {
			cfg.Input.Classes = f.classes
		}
		if err := cfg.Validate(); err != nil {
			return appcore.Exit(appcore.ExitUsage, err)
		}

		return appcore.Run(cmd.Context(), cmd.OutOrStdout(), g.log, appcore.Options{
			FASTA:           fasta,
			Tables:          tables,
			Config:          cfg,
			Format:          f.format,
			Header:          !f.noHeader,
			MetricsFile:     f.metricsFile,
			NoMatchExitCode: f.noMatchExitCode,
		})
	}
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// bindConfigFlags registers one flag per tunable, defaulting to
// config.Default(). The returned func copies only the flags the user set,
// so file values survive unless overridden.
func bindConfigFlags(fs *pflag.FlagSet) func(*config.Config) {
	var v config.Config
	d := config.Default()

	fs.IntVar(&v.Regions.WindowSize, "window-size", d.Regions.WindowSize, "GC composition window")
	fs.IntVar(&v.Regions.Step, "step", d.Regions.Step, "GC composition step")
	fs.Float64Var(&v.Regions.GCThreshold, "gc-threshold", d.Regions.GCThreshold, "GC fraction above which a window is unstable")
	fs.StringArrayVar(&v.Regions.Signatures, "signature", nil, "transposon signature regex, replaces the built-ins (repeatable)")
	fs.StringArrayVar(&v.Regions.Repeats, "repeat", nil, "repeat regex, replaces the built-ins (repeatable)")
	fs.Float64Var(&v.Consensus.ConservationThreshold, "conservation-threshold", d.Consensus.ConservationThreshold, "majority fraction marking a conserved column")
	fs.IntVar(&v.Consensus.MinVariants, "min-variants", d.Consensus.MinVariants, "distinct alleles needed for a candidate")
	fs.IntVar(&v.Consensus.MinCoverage, "min-coverage", d.Consensus.MinCoverage, "sequences covering a column needed for a candidate")
	fs.IntVar(&v.Context.Radius, "radius", d.Context.Radius, "flank size of SNP contexts")
	fs.StringVar(&v.Context.Uniqueness, "uniqueness", d.Context.Uniqueness, "context check: strict|permissive")
	fs.StringVar(&v.Pathogenicity.Mode, "pathogenicity", d.Pathogenicity.Mode, "pathogenicity gate: lenient|strict")
	fs.StringArrayVar(&v.Pathogenicity.Patterns, "pathogen-pattern", nil, "pathogenicity regex, replaces the built-ins (repeatable)")
	fs.IntVar(&v.Hotspot.WindowSize, "hotspot-window", d.Hotspot.WindowSize, "hotspot window size")
	fs.IntVar(&v.Hotspot.MinCount, "min-count", d.Hotspot.MinCount, "SNPs needed for a hotspot")
	fs.BoolVar(&v.Hotspot.ExcludeUnstable, "exclude-unstable", false, "drop hotspots overlapping unstable regions")
	fs.BoolVar(&v.Hotspot.Adaptive, "adaptive", false, "lower the hotspot threshold for small panels")
	fs.IntVar(&v.Pipeline.Workers, "workers", 0, "classification workers (0 = one per CPU)")

	return func(c *config.Config) {
		set := func(name string, apply func()) {
			if fs.Changed(name) {
				apply()
			}
		}
		set("window-size", func() { c.Regions.WindowSize = v.Regions.WindowSize })
		set("step", func() { c.Regions.Step = v.Regions.Step })
		set("gc-threshold", func() { c.Regions.GCThreshold = v.Regions.GCThreshold })
		set("signature", func() { c.Regions.Signatures = v.Regions.Signatures })
		set("repeat", func() { c.Regions.Repeats = v.Regions.Repeats })
		set("conservation-threshold", func() { c.Consensus.ConservationThreshold = v.Consensus.ConservationThreshold })
		set("min-variants", func() { c.Consensus.MinVariants = v.Consensus.MinVariants })
		set("min-coverage", func() { c.Consensus.MinCoverage = v.Consensus.MinCoverage })
		set("radius", func() { c.Context.Radius = v.Context.Radius })
		set("uniqueness", func() { c.Context.Uniqueness = v.Context.Uniqueness })
		set("pathogenicity", func() { c.Pathogenicity.Mode = v.Pathogenicity.Mode })
		set("pathogen-pattern", func() { c.Pathogenicity.Patterns = v.Pathogenicity.Patterns })
		set("hotspot-window", func() { c.Hotspot.WindowSize = v.Hotspot.WindowSize })
		set("min-count", func() { c.Hotspot.MinCount = v.Hotspot.MinCount })
		set("exclude-unstable", func() { c.Hotspot.ExcludeUnstable = v.Hotspot.ExcludeUnstable })
		set("adaptive", func() { c.Hotspot.Adaptive = v.Hotspot.Adaptive })
		set("workers", func() { c.Pipeline.Workers = v.Pipeline.Workers })
	}
}
