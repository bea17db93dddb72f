package figure

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"wifiviz/internal/utils"
)

// FileName returns the image name for one group: <stem>_<key>.png. Archive
// members use the same convention as loose files.
func FileName(stem, key string) string {
	return fmt.Sprintf("%s_%s.png", stem, key)
}

// renderAll rasterizes every figure concurrently. Results keep the input
// order, so downstream output is identical to a sequential render.
func renderAll(figs []*Figure) ([][]byte, error) {
	rendered := make([][]byte, len(figs))
	var g errgroup.Group
	for i, f := range figs {
		i, f := i, f
		g.Go(func() error {
			b, err := RenderPNG(f)
			if err != nil {
				return fmt.Errorf("render %s: %w", FileName("figure", f.GroupKey), err)
			}
			rendered[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}

// WriteImages renders each figure to its own PNG file under dir, creating
// the directory if absent and overwriting existing files. It returns the
// written file names in figure order.
func WriteImages(dir, stem string, figs []*Figure) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	rendered, err := renderAll(figs)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(figs))
	for i, f := range figs {
		names[i] = FileName(stem, f.GroupKey)
		if err := utils.SafeWriteFile(filepath.Join(dir, names[i]), rendered[i]); err != nil {
			return nil, fmt.Errorf("write %s: %w", names[i], err)
		}
	}
	return names, nil
}

// WriteArchive renders every figure and packs them into a single zip under
// dir, one member per group, with no loose image files. It returns the
// archive path.
func WriteArchive(dir, archive, stem string, figs []*Figure) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	rendered, err := renderAll(figs)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, f := range figs {
		w, err := zw.Create(FileName(stem, f.GroupKey))
		if err != nil {
			return "", fmt.Errorf("create archive member: %w", err)
		}
		if _, err := w.Write(rendered[i]); err != nil {
			return "", fmt.Errorf("write archive member: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	path := filepath.Join(dir, archive)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}
