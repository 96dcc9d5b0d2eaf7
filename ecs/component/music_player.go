package component

// BGMSink is a playing track. Implementations wrap the audio backend.
type BGMSink interface {
	Track() string
	Volume() float64
	SetVolume(v float64)
	Close()
}

// MusicPlayer stores global music playback state on a dedicated entity.
// The crossfader system is its only writer.
type MusicPlayer struct {
	Current BGMSink
	// Desired is the track the current level wants; empty means silence.
	Desired string
	// Hold delays starting a new track until the new level is live.
	Hold bool
	// Starting is set while the new track ramps up to the target.
	Starting bool
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
