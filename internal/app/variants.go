package app

import (
	"time"

	"github.com/spf13/cobra"

	"snpscan/internal/appcore"
	"snpscan/internal/output"
	"snpscan/internal/variant"
)

func newVariantsCmd(g *globals) *cobra.Command {
	var o appcore.VariantOptions
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Bin VCF variants (local or remote) into dense genomic windows",
		Example: `  snpscan variants --url https://ftp.ensembl.org/pub/release-110/variation/vcf/homo_sapiens/homo_sapiens-chr1.vcf.gz
  snpscan variants --file calls.vcf.gz --bin-width 5000 --threshold 10 -o jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Header = !noHeader
			return appcore.RunVariants(cmd.Context(), cmd.OutOrStdout(), g.log, o)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&o.URL, "url", "", "VCF URL (plain or gzip)")
	fs.StringVar(&o.File, "file", "", "local VCF file (plain, gzip or - for stdin)")
	fs.IntVar(&o.Limit, "limit", variant.DefaultLimit, "maximum variants read (0 = all)")
	fs.IntVar(&o.BinWidth, "bin-width", variant.DefaultBinWidth, "bin width in bases")
	fs.IntVar(&o.Threshold, "threshold", variant.DefaultBinThreshold, "variants needed to keep a bin")
	fs.DurationVar(&o.Timeout, "timeout", 5*time.Minute, "HTTP timeout for --url")
	fs.StringVarP(&o.Format, "output", "o", output.FormatText, "output format: text|json|jsonl")
	fs.BoolVar(&noHeader, "no-header", false, "omit the TSV header")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", appcore.ExitNoMatch, "exit code when no bin qualifies")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	return cmd
}
