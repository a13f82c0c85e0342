package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"hajjapply/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	stopped int
}

func (t *fakeTrack) Stop() { t.stopped++ }

type fakeStream struct {
	tracks   []*fakeTrack
	frame    image.Image
	frameErr error
}

func (s *fakeStream) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

func (s *fakeStream) Frame() (image.Image, error) {
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	return s.frame, nil
}

type fakeOpener struct {
	streams []*fakeStream
	errs    []error
	opened  []Facing
}

func (o *fakeOpener) Open(ctx context.Context, facing Facing) (Stream, error) {
	o.opened = append(o.opened, facing)
	idx := len(o.opened) - 1
	if idx < len(o.errs) && o.errs[idx] != nil {
		return nil, o.errs[idx]
	}
	if idx < len(o.streams) {
		return o.streams[idx], nil
	}
	return nil, errors.New("no stream configured")
}

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestSessionCapture(t *testing.T) {
	track := &fakeTrack{}
	stream := &fakeStream{tracks: []*fakeTrack{track}, frame: testFrame()}
	opener := &fakeOpener{streams: []*fakeStream{stream}}

	var captured []byte
	closeCalls := 0
	session := NewSession(opener, func(data []byte) { captured = data }, func() { closeCalls++ })

	require.NoError(t, session.Start(context.Background(), FacingUser))
	assert.Equal(t, StateStreaming, session.State())

	require.NoError(t, session.Capture())

	assert.Equal(t, StateCaptured, session.State())
	assert.Equal(t, 1, track.stopped)
	assert.Equal(t, 1, closeCalls)

	img, err := png.Decode(bytes.NewReader(captured))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestSessionDenied(t *testing.T) {
	opener := &fakeOpener{errs: []error{errors.New("permission denied")}}

	closeCalls := 0
	session := NewSession(opener, nil, func() { closeCalls++ })

	err := session.Start(context.Background(), FacingUser)
	require.Error(t, err)

	var accessErr *domain.DeviceAccessError
	assert.ErrorAs(t, err, &accessErr)
	assert.Equal(t, StateDenied, session.State())
	assert.Equal(t, 1, closeCalls)
}

func TestSessionCancel(t *testing.T) {
	track := &fakeTrack{}
	stream := &fakeStream{tracks: []*fakeTrack{track}, frame: testFrame()}
	opener := &fakeOpener{streams: []*fakeStream{stream}}

	closeCalls := 0
	session := NewSession(opener, nil, func() { closeCalls++ })

	require.NoError(t, session.Start(context.Background(), FacingUser))
	session.Cancel()

	assert.Equal(t, StateCancelled, session.State())
	assert.Equal(t, 1, track.stopped)
	assert.Equal(t, 1, closeCalls)

	t.Run("cancel after terminal state is a no-op", func(t *testing.T) {
		session.Cancel()
		assert.Equal(t, 1, track.stopped)
		assert.Equal(t, 1, closeCalls)
	})
}

func TestSessionFrameFailureStopsTracks(t *testing.T) {
	track := &fakeTrack{}
	stream := &fakeStream{tracks: []*fakeTrack{track}, frameErr: errors.New("device wedged")}
	opener := &fakeOpener{streams: []*fakeStream{stream}}

	session := NewSession(opener, nil, nil)

	require.NoError(t, session.Start(context.Background(), FacingUser))
	require.Error(t, session.Capture())

	assert.Equal(t, StateCancelled, session.State())
	assert.Equal(t, 1, track.stopped)
}

func TestToggleFacing(t *testing.T) {
	t.Run("tears down and reacquires the opposite mode", func(t *testing.T) {
		firstTrack := &fakeTrack{}
		secondTrack := &fakeTrack{}
		opener := &fakeOpener{streams: []*fakeStream{
			{tracks: []*fakeTrack{firstTrack}, frame: testFrame()},
			{tracks: []*fakeTrack{secondTrack}, frame: testFrame()},
		}}

		session := NewSession(opener, nil, nil)

		require.NoError(t, session.Start(context.Background(), FacingUser))
		require.NoError(t, session.ToggleFacing(context.Background()))

		assert.Equal(t, []Facing{FacingUser, FacingEnvironment}, opener.opened)
		assert.Equal(t, 1, firstTrack.stopped)
		assert.Zero(t, secondTrack.stopped)
		assert.Equal(t, StateStreaming, session.State())
		assert.Equal(t, FacingEnvironment, session.Facing())
	})

	t.Run("reacquire failure ends in denied", func(t *testing.T) {
		track := &fakeTrack{}
		opener := &fakeOpener{
			streams: []*fakeStream{{tracks: []*fakeTrack{track}, frame: testFrame()}},
			errs:    []error{nil, errors.New("rear camera missing")},
		}

		closeCalls := 0
		session := NewSession(opener, nil, func() { closeCalls++ })

		require.NoError(t, session.Start(context.Background(), FacingUser))
		err := session.ToggleFacing(context.Background())
		require.Error(t, err)

		assert.Equal(t, StateDenied, session.State())
		assert.Equal(t, 1, track.stopped)
		assert.Equal(t, 1, closeCalls)
	})
}
