package system

import (
	"fmt"
	"log"
)

// Debug turns broken invariants into panics. Release builds only log them.
var Debug bool

func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if Debug {
		panic("invariant: " + msg)
	}
	log.Printf("invariant: %s", msg)
}
