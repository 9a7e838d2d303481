package config

// Config carries the run parameters for plan generation.
type Config struct {
	InputPath    string
	AudioPath    string
	RenderPlan   string
	MixPlan      string
	FilterOut    string
	Width        int
	Height       int
	FPS          int
	Workers      int
	PageDuration float64
	BGMVolume    float64
	Preset       string
	ShowStats    bool
	BuildVersion string
}
