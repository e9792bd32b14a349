package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', // 0000
	'▘', // 0001
	'▝', // 0010
	'▀', // 0011
	'▖', // 0100
	'▌', // 0101
	'▞', // 0110
	'▛', // 0111
	'▗', // 1000
	'▚', // 1001
	'▐', // 1010
	'▜', // 1011
	'▄', // 1100
	'▙', // 1101
	'▟', // 1110
	'█', // 1111
}

// rgb is an opaque 8-bit color sample
type rgb struct {
	R, G, B uint8
}

func (c rgb) color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Cell is one converted terminal cell
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Style returns the tcell style for the cell colors
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}

// Convert downsamples img onto a cols x rows grid of quadrant cells
// Each cell covers a 2x2 sample block, giving twice the grid resolution per axis
func Convert(img *image.RGBA, cols, rows int) []Cell {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil
	}

	gridW, gridH := cols*2, rows*2
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	cells := make([]Cell, cols*rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var pixels [4]rgb
			for i, off := range offsets {
				sx := bounds.Min.X + ((x*2+off[0])*srcW+srcW/2)/gridW
				sy := bounds.Min.Y + ((y*2+off[1])*srcH+srcH/2)/gridH
				sx = min(sx, bounds.Max.X-1)
				sy = min(sy, bounds.Max.Y-1)
				pixels[i] = sample(img, sx, sy)
			}

			char, fg, bg := findBestQuadrant(pixels)
			cells[y*cols+x] = Cell{Rune: char, Fg: fg.color(), Bg: bg.color()}
		}
	}
	return cells
}

// sample reads a pixel directly from the RGBA buffer, compositing over black
func sample(img *image.RGBA, x, y int) rgb {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	// Premultiplied; over black is the stored value
	return rgb{R: p[0], G: p[1], B: p[2]}
}

// findBestQuadrant picks the pattern and fg/bg pair with the least squared error
func findBestQuadrant(pixels [4]rgb) (rune, rgb, rgb) {
	bestError := int(^uint(0) >> 1)
	bestPattern := 0
	var bestFg, bestBg rgb

	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := patternColors(pixels, pattern)
		if err < bestError {
			bestError = err
			bestPattern = pattern
			bestFg = fg
			bestBg = bg
		}
	}

	return QuadrantChars[bestPattern], bestFg, bestBg
}

// patternColors averages each group and returns the total squared error
func patternColors(pixels [4]rgb, pattern int) (fg, bg rgb, totalError int) {
	var fgSum, bgSum [3]int
	var fgCount, bgCount int

	for i := 0; i < 4; i++ {
		p := pixels[i]
		if pattern&(1<<i) != 0 {
			fgSum[0] += int(p.R)
			fgSum[1] += int(p.G)
			fgSum[2] += int(p.B)
			fgCount++
		} else {
			bgSum[0] += int(p.R)
			bgSum[1] += int(p.G)
			bgSum[2] += int(p.B)
			bgCount++
		}
	}

	if fgCount > 0 {
		fg = rgb{uint8(fgSum[0] / fgCount), uint8(fgSum[1] / fgCount), uint8(fgSum[2] / fgCount)}
	}
	if bgCount > 0 {
		bg = rgb{uint8(bgSum[0] / bgCount), uint8(bgSum[1] / bgCount), uint8(bgSum[2] / bgCount)}
	}

	for i := 0; i < 4; i++ {
		target := bg
		if pattern&(1<<i) != 0 {
			target = fg
		}
		totalError += distanceSq(pixels[i], target)
	}
	return fg, bg, totalError
}

func distanceSq(a, b rgb) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
