package system

import "errors"

var errNoAudio = errors.New("no audio backend")
