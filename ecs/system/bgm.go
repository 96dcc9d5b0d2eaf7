package system

import (
	"log"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/state"
)

const (
	defaultBGMStep = 0.05
	volumeEpsilon  = 1e-9
)

// BGMOpener starts a looping track at volume zero.
type BGMOpener interface {
	OpenBGM(track string) (component.BGMSink, error)
}

// BGMCrossfader moves the music player toward its desired track: the
// current track ramps down and closes, then the desired one opens at zero
// and ramps up to the BGM volume. At most one track is audible.
type BGMCrossfader struct {
	states   *state.Machines
	opener   BGMOpener
	settings *component.AudioSettings
	step     float64
	// missing is the last track that failed to open; it is not retried.
	missing string
}

func NewBGMCrossfader(states *state.Machines, opener BGMOpener, settings *component.AudioSettings, step float64) *BGMCrossfader {
	if step <= 0 {
		step = defaultBGMStep
	}
	return &BGMCrossfader{states: states, opener: opener, settings: settings, step: step}
}

func (bc *BGMCrossfader) Update(w *ecs.World) {
	if bc == nil || w == nil {
		return
	}
	mp := musicPlayer(w)
	if mp == nil {
		return
	}
	if bc.missing != "" && bc.missing != mp.Desired {
		bc.missing = ""
	}
	target := bc.settings.TargetBGM()
	ramp := bc.step * target

	cur := mp.Current
	switch {
	case cur != nil && cur.Track() != mp.Desired:
		v := cur.Volume() - ramp
		if v <= volumeEpsilon || ramp <= 0 {
			cur.Close()
			mp.Current = nil
		} else {
			cur.SetVolume(v)
		}
		bc.setState(state.BGMChanging)

	case cur == nil && mp.Desired != "" && mp.Desired != bc.missing:
		if mp.Hold {
			bc.setState(state.BGMChanging)
			return
		}
		sink, err := bc.open(mp.Desired)
		if err != nil {
			log.Printf("bgm: %s: %v", mp.Desired, err)
			bc.missing = mp.Desired
			bc.setState(state.BGMChanged)
			return
		}
		sink.SetVolume(0)
		mp.Current = sink
		mp.Starting = true
		bc.setState(state.BGMChanging)

	case cur != nil && mp.Starting:
		v := cur.Volume() + ramp
		if v >= target-volumeEpsilon {
			v = target
			mp.Starting = false
			bc.setState(state.BGMChanged)
		} else {
			bc.setState(state.BGMChanging)
		}
		cur.SetVolume(v)

	default:
		if cur != nil && cur.Volume() != target {
			cur.SetVolume(target)
		}
		bc.setState(state.BGMChanged)
	}
}

func (bc *BGMCrossfader) open(track string) (component.BGMSink, error) {
	if bc.opener == nil {
		return nil, errNoAudio
	}
	return bc.opener.OpenBGM(track)
}

func (bc *BGMCrossfader) setState(s state.BGMState) {
	if !bc.states.BGM.Is(s) {
		bc.states.BGM.Set(s)
	}
}

// StopMusic closes the playing track at once.
func StopMusic(w *ecs.World) {
	mp := musicPlayer(w)
	if mp == nil {
		return
	}
	if mp.Current != nil {
		mp.Current.Close()
		mp.Current = nil
	}
	mp.Desired = ""
	mp.Hold = false
	mp.Starting = false
}
