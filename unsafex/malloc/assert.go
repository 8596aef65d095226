//go:build !heapdebug

package malloc

const debugChecks = false

// invariant logs a broken internal invariant. The call that hit it fails
// gracefully instead of corrupting the layout further.
func (h *Heap) invariant(format string, args ...interface{}) {
	h.log.Errorf("invariant failure: "+format, args...)
}
