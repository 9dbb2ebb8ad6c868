package compositor

import (
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/texture"
)

// Outputs holds one composited canvas per channel. BaseColor and Normal are
// *image.NRGBA; Roughness and Metalness are *image.Gray.
type Outputs map[atlas.Channel]image.Image

// Render composites all four channel atlases. Channels run in parallel and
// tiles within a channel share a bounded worker pool; every tile writes a
// disjoint pixel rectangle of its own canvas, so no locking is needed.
// The layout must be final before Render is called.
func Render(layout atlas.Layout, src texture.Source, method Method, workers int) Outputs {
	if workers < 1 {
		workers = 1
	}

	outs := make(Outputs, len(atlas.Channels))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ch := range atlas.Channels {
		wg.Add(1)
		go func(ch atlas.Channel) {
			defer wg.Done()
			img := renderChannel(ch, layout, src, method, workers)
			mu.Lock()
			outs[ch] = img
			mu.Unlock()
		}(ch)
	}
	wg.Wait()

	return outs
}

func renderChannel(ch atlas.Channel, layout atlas.Layout, src texture.Source, method Method, workers int) image.Image {
	fill := ch.DefaultFill()

	if ch.Grayscale() {
		canvas := image.NewGray(image.Rect(0, 0, layout.Width, layout.Height))
		fillGray(canvas, fill.R) // default fills are neutral, R==G==B
		eachTile(layout, workers, func(tile atlas.Tile) {
			u := tile.Usable()
			img := src.Image(tile.Slot, ch)
			if img == nil {
				fillGrayRect(canvas, u, fill.R)
				return
			}
			pasteGray(canvas, u, resize(img, u.Dx(), u.Dy(), method))
		})
		return canvas
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	fillNRGBA(canvas, fill)
	eachTile(layout, workers, func(tile atlas.Tile) {
		u := tile.Usable()
		img := src.Image(tile.Slot, ch)
		if img == nil {
			fillNRGBARect(canvas, u, fill)
			return
		}
		resized := resize(img, u.Dx(), u.Dy(), method)
		xdraw.Copy(canvas, u.Min, resized, resized.Bounds(), xdraw.Src, nil)
	})
	return canvas
}

// eachTile runs fn over the layout's tiles on a pool of workers.
func eachTile(layout atlas.Layout, workers int, fn func(atlas.Tile)) {
	tiles := make(chan atlas.Tile, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tiles {
				fn(t)
			}
		}()
	}
	for _, t := range layout.Tiles {
		tiles <- t
	}
	close(tiles)
	wg.Wait()
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

func fillNRGBARect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}

func fillGray(img *image.Gray, v uint8) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}

func fillGrayRect(img *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i] = v
			i++
		}
	}
}

// pasteGray writes the resized tile into place, converting to grayscale with
// BT.601 luma weights on the way.
func pasteGray(dst *image.Gray, r image.Rectangle, src *image.RGBA) {
	for y := 0; y < r.Dy(); y++ {
		si := src.PixOffset(0, y)
		di := dst.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < r.Dx(); x++ {
			l := (299*int(src.Pix[si]) + 587*int(src.Pix[si+1]) + 114*int(src.Pix[si+2])) / 1000
			dst.Pix[di] = uint8(l)
			si += 4
			di++
		}
	}
}
