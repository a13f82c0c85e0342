// Package camera drives a photo capture session over an abstract video
// device. The session owns the device lifecycle: whichever way it ends, every
// acquired track is stopped before control returns to the caller.
package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"

	"hajjapply/domain"
)

var (
	errAlreadyStarted = errors.New("capture session already started")
	errNotStreaming   = errors.New("capture session is not streaming")
)

type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

// Opposite flips between the selfie and rear-facing modes.
func (f Facing) Opposite() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

type State int

const (
	StateIdle State = iota
	StateRequestingDevice
	StateStreaming
	StateCaptured
	StateCancelled
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestingDevice:
		return "requesting-device"
	case StateStreaming:
		return "streaming"
	case StateCaptured:
		return "captured"
	case StateCancelled:
		return "cancelled"
	case StateDenied:
		return "denied"
	}
	return "unknown"
}

// Track is one acquired media track. Stop must be idempotent.
type Track interface {
	Stop()
}

// Stream is an open video source.
type Stream interface {
	Tracks() []Track
	Frame() (image.Image, error)
}

// DeviceOpener acquires a stream for the requested facing mode.
type DeviceOpener interface {
	Open(ctx context.Context, facing Facing) (Stream, error)
}

// Session is the capture state machine. Captured frames are handed to
// onCapture as PNG bytes; onClose fires exactly once on every terminal
// transition.
type Session struct {
	opener    DeviceOpener
	onCapture func(pngData []byte)
	onClose   func()

	mu     sync.Mutex
	state  State
	facing Facing
	stream Stream
	closed bool
}

func NewSession(opener DeviceOpener, onCapture func([]byte), onClose func()) *Session {
	return &Session{
		opener:    opener,
		onCapture: onCapture,
		onClose:   onClose,
		state:     StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Facing() Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

// Start acquires the device. On refusal the session lands in Denied, the
// close callback fires and the caller gets a DeviceAccessError.
func (s *Session) Start(ctx context.Context, facing Facing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return &domain.DeviceAccessError{Facing: string(facing), Err: errAlreadyStarted}
	}

	s.state = StateRequestingDevice
	s.facing = facing

	stream, err := s.opener.Open(ctx, facing)
	if err != nil {
		s.state = StateDenied
		s.fireClose()
		return &domain.DeviceAccessError{Facing: string(facing), Err: err}
	}

	s.stream = stream
	s.state = StateStreaming

	return nil
}

// Capture rasterizes the current frame to PNG, stops the device and hands
// the bytes to the capture callback. A frame or encode failure cancels the
// session instead; the device never stays open.
func (s *Session) Capture() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStreaming {
		return errNotStreaming
	}

	frame, err := s.stream.Frame()
	if err != nil {
		s.stopTracks()
		s.state = StateCancelled
		s.fireClose()
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		s.stopTracks()
		s.state = StateCancelled
		s.fireClose()
		return err
	}

	s.stopTracks()
	s.state = StateCaptured

	if s.onCapture != nil {
		s.onCapture(buf.Bytes())
	}
	s.fireClose()

	return nil
}

// Cancel abandons the session from any live state.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCaptured || s.state == StateCancelled || s.state == StateDenied {
		return
	}

	s.stopTracks()
	s.state = StateCancelled
	s.fireClose()
}

// ToggleFacing tears the current stream down and re-requests the opposite
// mode. When the second acquisition fails the session ends in Denied rather
// than keeping the old stream alive.
func (s *Session) ToggleFacing(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStreaming {
		return errNotStreaming
	}

	s.stopTracks()
	s.stream = nil

	next := s.facing.Opposite()
	s.state = StateRequestingDevice
	s.facing = next

	stream, err := s.opener.Open(ctx, next)
	if err != nil {
		s.state = StateDenied
		s.fireClose()
		return &domain.DeviceAccessError{Facing: string(next), Err: err}
	}

	s.stream = stream
	s.state = StateStreaming

	return nil
}

func (s *Session) stopTracks() {
	if s.stream == nil {
		return
	}
	for _, t := range s.stream.Tracks() {
		t.Stop()
	}
	s.stream = nil
}

func (s *Session) fireClose() {
	if s.closed {
		return
	}
	s.closed = true
	if s.onClose != nil {
		s.onClose()
	}
}
