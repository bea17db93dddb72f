package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	cfgpkg "wifiviz/internal/config"
	"wifiviz/internal/dataset"
	"wifiviz/internal/figure"
)

var (
	distImageDir  string
	distImageStem string
	distBins      int
	distArchive   string
)

var distCmd = &cobra.Command{
	Use:   "dist [data-file]",
	Short: "Plot per-room signal strength distributions to PNG files",
	Long: `Builds one histogram figure per room (a grid of per-channel
distributions with shared axis ranges) and writes them as
<stem>_<room>.png files, or packs them into a single zip archive when
--archive is set.`,
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
		if f.Changed("image-dir") {
			opt.ImageDir = distImageDir
		}
		if f.Changed("image-stem") {
			opt.ImageStem = distImageStem
		}
		if f.Changed("bins") {
			opt.Bins = distBins
		}
		if f.Changed("archive") {
			opt.Archive = distArchive
		}
		paths, err := runDist(opt)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("✓ Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(distCmd)
	distCmd.Flags().StringVarP(&distImageDir, "image-dir", "d", "images", "directory for the output PNG files")
	distCmd.Flags().StringVarP(&distImageStem, "image-stem", "s", "room", "shared stem of the image file names (<stem>_<room>.png)")
	distCmd.Flags().IntVarP(&distBins, "bins", "b", figure.DefaultBins, "number of histogram bins")
	distCmd.Flags().StringVar(&distArchive, "archive", "", "pack images into a single zip of this name instead of loose files")
}

// runDist executes the distribution pipeline end to end and returns the
// written paths: one per room, or a single archive path.
func runDist(opt cfgpkg.Options) ([]string, error) {
	if opt.Bins < 1 {
		return nil, fmt.Errorf("invalid bins %d (must be at least 1)", opt.Bins)
	}
	table, err := dataset.Load(opt.DataFile, dataset.DefaultSchema())
	if err != nil {
		return nil, err
	}
	groups := table.Partition()
	figs := make([]*figure.Figure, 0, groups.Len())
	for _, key := range groups.Keys() {
		figs = append(figs, figure.Build(key, groups.Rows(key), table.Schema, opt.Bins))
	}
	if opt.Archive != "" {
		path, err := figure.WriteArchive(opt.ImageDir, opt.Archive, opt.ImageStem, figs)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	names, err := figure.WriteImages(opt.ImageDir, opt.ImageStem, figs)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(opt.ImageDir, n)
	}
	return paths, nil
}
