//go:build heapdebug

package malloc

import "fmt"

const debugChecks = true

func (h *Heap) invariant(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	h.log.Error("invariant failure: " + msg)
	panic("malloc: " + msg)
}
