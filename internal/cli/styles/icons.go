package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe   = "" // browser/web
	IconVersion = "" // tag
	IconGo      = "" // go gopher
	IconArrow   = "" // arrow right
	IconBack    = "" // arrow left
	IconSearch  = "" // magnifier
	IconHome    = "" // house

	// Doctor / diagnostics
	IconDoctor  = "" // stethoscope
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconCode    = "" // code
	IconConfig  = "" // config

	// Player
	IconVideo  = "" // video camera
	IconFilm   = "" // film
	IconExpand = "" // expand
	IconPlay   = "" // play
)
