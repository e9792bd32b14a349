package renderer

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	fontOnce sync.Once
	boldFont *truetype.Font
)

// faceOf returns a bold face of the given pixel size, falling back to the fixed 7x13 bitmap face
func faceOf(size float64) font.Face {
	fontOnce.Do(func() {
		if f, err := truetype.Parse(gobold.TTF); err == nil {
			boldFont = f
		}
	})
	if boldFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(boldFont, &truetype.Options{Size: size, Hinting: font.HintingFull})
}
