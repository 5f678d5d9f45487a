package render

import (
	"fmt"
	"image"
	"image/color/palette"
	imgdraw "image/draw"
	"image/gif"
	"io"
	"path/filepath"
	"time"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"gonum.org/v1/plot/vg/vgimg"
)

// Animation collects heatmap frames, writing each one as a PNG and
// assembling them into a single GIF on Finish.
type Animation struct {
	fsys   fsutil.FileSystem
	dir    string
	prefix string
	size   Size
	delay  time.Duration

	frames []*image.Paletted
}

// NewAnimation writes frames under dir as <prefix>_NNNN.png.
func NewAnimation(fsys fsutil.FileSystem, dir, prefix string, size Size, delay time.Duration) *Animation {
	return &Animation{fsys: fsys, dir: dir, prefix: prefix, size: size, delay: delay}
}

// Len returns the number of frames added so far.
func (a *Animation) Len() int { return len(a.frames) }

// AddFrame renders values as the next frame, named <prefix>_NNNN.png.
// Frames with no finite values are skipped and report ErrNoData.
func (a *Animation) AddFrame(title string, values [][]float64) error {
	return a.AddFrameAs(fmt.Sprintf("%s_%04d.png", a.prefix, len(a.frames)), title, values)
}

// AddFrameAs is AddFrame with an explicit PNG file name under the frame
// directory.
func (a *Animation) AddFrameAs(name, title string, values [][]float64) error {
	p, err := NewHeatmapPlot(title, values)
	if err != nil {
		return err
	}
	c := rasterize(p, a.size)

	path := filepath.Join(a.dir, name)
	if err := writeTo(a.fsys, path, vgimg.PngCanvas{Canvas: c}.WriteTo); err != nil {
		return err
	}

	a.frames = append(a.frames, toPaletted(c.Image()))
	return nil
}

// Finish writes the collected frames as a looping GIF to path.
func (a *Animation) Finish(path string) error {
	if len(a.frames) == 0 {
		return ErrNoData
	}
	delay := int(a.delay / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{
		Image: a.frames,
		Delay: make([]int, len(a.frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}
	return writeTo(a.fsys, path, errOnly(func(w io.Writer) error {
		return gif.EncodeAll(w, anim)
	}))
}

func toPaletted(src image.Image) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	imgdraw.FloydSteinberg.Draw(dst, b, src, b.Min)
	return dst
}
