// Package audio plays the game's music and sound effects through ebiten.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/puff/assets"
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs/component"
)

const sampleRate = 44100

// Backend opens BGM tracks from ost/ and plays effects from sfx/. Both are
// read through the asset library so the override flag applies to audio
// too.
type Backend struct {
	context *audio.Context
	library *assets.Library

	sfx map[string][]byte
}

func NewBackend(library *assets.Library) *Backend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Backend{context: ctx, library: library, sfx: make(map[string][]byte)}
}

// OpenBGM starts track looping at volume zero. The mp3 is preferred; an
// ogg with the same name is used otherwise.
func (b *Backend) OpenBGM(track string) (component.BGMSink, error) {
	stream, err := b.decodeLoop(component.BGMPath(track))
	if err != nil {
		return nil, err
	}
	player, err := b.context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: bgm %s: %w", track, err)
	}
	player.SetVolume(0)
	player.Play()
	return &bgmSink{track: track, player: player}, nil
}

func (b *Backend) decodeLoop(name string) (io.ReadSeeker, error) {
	if data, err := b.library.ReadFile(name); err == nil {
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("audio: decode %s: %w", name, err)
		}
		return audio.NewInfiniteLoop(stream, stream.Length()), nil
	}
	alt := strings.TrimSuffix(name, path.Ext(name)) + ".ogg"
	data, err := b.library.ReadFile(alt)
	if err != nil {
		return nil, err
	}
	stream, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", alt, err)
	}
	return audio.NewInfiniteLoop(stream, stream.Length()), nil
}

// PlaySFX plays sfx/<name>.wav once. Decoded effects are cached; a missing
// effect is skipped.
func (b *Backend) PlaySFX(name string, volume float64) {
	pcm, err := b.effect(name)
	if err != nil {
		if !assets.IsMissing(err) {
			log.Printf("audio: %v", err)
		}
		return
	}
	player := b.context.NewPlayerFromBytes(pcm)
	player.SetVolume(backendVolume(volume))
	player.Play()
}

func (b *Backend) effect(name string) ([]byte, error) {
	key := strings.TrimSuffix(name, ".wav")
	if pcm, ok := b.sfx[key]; ok {
		return pcm, nil
	}
	data, err := b.library.ReadFile(component.SFXPath(key))
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sfx %s: %w", key, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read sfx %s: %w", key, err)
	}
	b.sfx[key] = pcm
	return pcm, nil
}

// Purge drops cached effects, e.g. after the asset override flips.
func (b *Backend) Purge() {
	clear(b.sfx)
}

type bgmSink struct {
	track  string
	volume float64
	player *audio.Player
}

func (s *bgmSink) Track() string {
	return s.track
}

func (s *bgmSink) Volume() float64 {
	return s.volume
}

func (s *bgmSink) SetVolume(v float64) {
	s.volume = v
	s.player.SetVolume(backendVolume(v))
}

func (s *bgmSink) Close() {
	s.player.Pause()
	if err := s.player.Close(); err != nil {
		log.Printf("audio: close %s: %v", s.track, err)
	}
}

// backendVolume maps the [0, MaxVolume] settings range onto the player's
// [0, 1].
func backendVolume(v float64) float64 {
	return common.Clamp(v/component.MaxVolume, 0, 1)
}
