package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wifiviz/internal/colorscale"
	cfgpkg "wifiviz/internal/config"
	"wifiviz/internal/corr"
	"wifiviz/internal/dataset"
	"wifiviz/internal/report"
	"wifiviz/internal/utils"
)

var (
	corrResultFile string
	corrColormap   string
	corrPrecision  int
	corrAbsolute   bool
	corrTitle      string
)

var corrCmd = &cobra.Command{
	Use:   "corr [data-file]",
	Short: "Render per-room signal correlation matrices to one HTML file",
	Long: `Computes the pairwise Pearson correlation matrix of the seven signal
channels independently for each room and writes one color-coded HTML table
per room into a single document. Undefined coefficients (constant channels,
too few rows) render as a dash, never as a number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := currentConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opt.DataFile = args[0]
		}
		f := cmd.Flags()
		if f.Changed("result-file") {
			opt.ResultFile = corrResultFile
		}
		if f.Changed("colormap") {
			opt.Colormap = corrColormap
		}
		if f.Changed("precision") {
			opt.Precision = corrPrecision
		}
		if f.Changed("absolute") {
			opt.Absolute = corrAbsolute
		}
		if f.Changed("title") {
			opt.Title = corrTitle
		}
		n, err := runCorr(opt)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d bytes to %s\n", n, opt.ResultFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(corrCmd)
	corrCmd.Flags().StringVarP(&corrResultFile, "result-file", "r", "correlations.html", "path of the resulting HTML file")
	corrCmd.Flags().StringVarP(&corrColormap, "colormap", "c", "Greens", "color scale for the heat-map cells")
	corrCmd.Flags().IntVarP(&corrPrecision, "precision", "p", 6, "digits after the decimal point for cell values (0-6)")
	corrCmd.Flags().BoolVarP(&corrAbsolute, "absolute", "a", false, "render absolute values of correlation coefficients")
	corrCmd.Flags().StringVar(&corrTitle, "title", "", "document title")
}

// runCorr executes the grouped-correlation pipeline end to end and returns
// the number of bytes written. Rendering options are validated before any
// loading or computation; a fatal error leaves no partial output file.
func runCorr(opt cfgpkg.Options) (int, error) {
	if err := report.ValidatePrecision(opt.Precision); err != nil {
		return 0, err
	}
	scale, err := colorscale.Lookup(opt.Colormap)
	if err != nil {
		return 0, err
	}

	table, err := dataset.Load(opt.DataFile, dataset.DefaultSchema())
	if err != nil {
		return 0, err
	}
	groups := table.Partition()
	tables := make([]string, 0, groups.Len())
	for _, key := range groups.Keys() {
		m := corr.Compute(groups.Rows(key), table.Schema.Channels)
		if opt.Absolute {
			m = m.Abs()
		}
		frag, err := report.RenderTable(key, m, opt.Precision, scale)
		if err != nil {
			return 0, err
		}
		tables = append(tables, frag)
	}
	doc := report.AssembleDocument(opt.Title, tables)
	if err := utils.SafeWriteFile(opt.ResultFile, []byte(doc)); err != nil {
		return 0, err
	}
	return len(doc), nil
}
