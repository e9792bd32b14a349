package visual

import "image/color"

// Backdrop gradient, top to bottom
var (
	RgbBackdropTop    = color.NRGBA{0x0f, 0x17, 0x2a, 0xff}
	RgbBackdropBottom = color.NRGBA{0x0b, 0x10, 0x20, 0xff}
)

// Asphalt gradient, top to bottom
var (
	RgbAsphaltTop    = color.NRGBA{0x12, 0x18, 0x26, 0xff}
	RgbAsphaltBottom = color.NRGBA{0x0b, 0x10, 0x20, 0xff}
)

// Lane divider stroke
var RgbLaneDivider = color.NRGBA{0xff, 0xff, 0xff, 31} // rgba(255,255,255,0.12)

// Lane divider geometry
const (
	LaneDividerWidth = 2.0
	LaneDividerDash  = 18.0
	LaneDividerGap   = 10.0
	LaneDividerInset = 20.0
)

// Checkered finish strip
var (
	RgbCheckerLight = color.NRGBA{0xe5, 0xe7, 0xeb, 0xff}
	RgbCheckerDark  = color.NRGBA{0x11, 0x18, 0x27, 0xff}
	RgbFinishPole   = color.NRGBA{0xff, 0xff, 0xff, 51} // rgba(255,255,255,0.2)
)

const (
	CheckerSize   = 10.0
	FinishPoleW   = 4.0
	FinishPoleOff = 2.0
)

// Car body geometry
const (
	CarWidth        = 54.0
	CarHeight       = 26.0
	CarCornerRadius = 8.0
	CabinRadius     = 6.0
	ShadowOffset    = 10.0
	ShadowAlpha     = 0.6
	LightSize       = 4.0
)

// Car trim
var (
	RgbCarUnderside = color.NRGBA{0x11, 0x18, 0x27, 0xff}
	RgbCabin        = color.NRGBA{0xff, 0xff, 0xff, 51}  // rgba(255,255,255,0.2)
	RgbHeadlight    = color.NRGBA{0xff, 0xff, 0xc8, 204} // rgba(255,255,200,0.8)
)

// Livery holds a racer's body and shadow colors
type Livery struct {
	Body   color.NRGBA
	Shadow color.NRGBA
}

// Liveries cycles by lane index: red, emerald, blue, amber
var Liveries = [4]Livery{
	{Body: color.NRGBA{0xef, 0x44, 0x44, 0xff}, Shadow: color.NRGBA{0x7f, 0x1d, 0x1d, 0xff}},
	{Body: color.NRGBA{0x10, 0xb9, 0x81, 0xff}, Shadow: color.NRGBA{0x06, 0x4e, 0x3b, 0xff}},
	{Body: color.NRGBA{0x3b, 0x82, 0xf6, 0xff}, Shadow: color.NRGBA{0x1e, 0x3a, 0x8a, 0xff}},
	{Body: color.NRGBA{0xf5, 0x9e, 0x0b, 0xff}, Shadow: color.NRGBA{0x7c, 0x2d, 0x12, 0xff}},
}

// HUD text
var (
	RgbHudClock  = color.NRGBA{0xff, 0xff, 0xff, 217} // rgba(255,255,255,0.85)
	RgbHudBanner = color.NRGBA{0xff, 0xff, 0xff, 242} // rgba(255,255,255,0.95)
)

const (
	HudClockSize  = 16.0
	HudBannerSize = 28.0
	HudClockInset = 16.0
	HudClockY     = 24.0
	HudBannerY    = 40.0
)
