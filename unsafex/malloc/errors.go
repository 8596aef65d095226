package malloc

import "github.com/pkg/errors"

var (
	// ErrNilPointer is returned by TryFree for a nil pointer.
	ErrNilPointer = errors.New("malloc: free of nil pointer")

	// ErrUnknownPointer is returned by TryFree for a pointer that does not start
	// a chunk of this heap.
	ErrUnknownPointer = errors.New("malloc: free of unknown pointer")

	// ErrDoubleFree is returned by TryFree for a chunk that is already free.
	ErrDoubleFree = errors.New("malloc: double free")

	// ErrCorrupted is returned by Inspector.Check when the chunk layout is broken.
	ErrCorrupted = errors.New("malloc: heap corrupted")

	// ErrClosed is the provider error recorded once a heap has been closed.
	ErrClosed = errors.New("malloc: heap closed")
)
