package imageset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

func img(w, h int) *surface.Surface {
	return surface.MustNew(w, h, surface.XRGB8888)
}

func TestSetGrowsAndFixesSize(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Set(2, img(4, 3)))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, vmath.V2(4, 3), s.Size())
	assert.Nil(t, s.Image(0))
	assert.NotNil(t, s.Image(2))

	require.NoError(t, s.Set(0, img(4, 3)))
	assert.Equal(t, 3, s.Len())
}

func TestSetRejectsInvalidImages(t *testing.T) {
	s := New(1)
	assert.ErrorIs(t, s.Set(0, nil), ErrNilImage)
	assert.ErrorIs(t, s.Set(-1, img(1, 1)), ErrIndexRange)
	assert.ErrorIs(t, s.Set(MaxImages, img(1, 1)), ErrIndexRange)

	require.NoError(t, s.Append(img(2, 2)))
	assert.ErrorIs(t, s.Append(img(3, 2)), ErrSizeMismatch)
	assert.Equal(t, 1, s.Len())
}

func TestSetSize(t *testing.T) {
	s := New(1)
	assert.ErrorIs(t, s.SetSize(vmath.V2(0, 5)), ErrZeroSize)
	assert.ErrorIs(t, s.SetSize(vmath.V2(-4, -4)), ErrZeroSize)
	assert.ErrorIs(t, s.SetSize(vmath.V2(3, -1)), ErrZeroSize)
	assert.True(t, s.Size().IsZero(), "rejected sizes leave the set unsized")
	require.NoError(t, s.SetSize(vmath.V2(5, 5)))
	assert.ErrorIs(t, s.Append(img(4, 4)), ErrSizeMismatch)
	require.NoError(t, s.Append(img(5, 5)))
	assert.ErrorIs(t, s.SetSize(vmath.V2(6, 6)), ErrSizeMismatch)
}

func TestImageIndexPanics(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Append(img(1, 1)))
	assert.Panics(t, func() { s.Image(1) })
	assert.Panics(t, func() { s.Image(-1) })
}

func TestReplaceClosesOldImage(t *testing.T) {
	s := New(0)
	old := img(2, 2)
	require.NoError(t, s.Set(0, old))
	require.NoError(t, s.Set(0, img(2, 2)))
	assert.True(t, old.Closed())
}

func TestClearReleasesAndAllowsRefill(t *testing.T) {
	s := New(0)
	a, b := img(2, 2), img(2, 2)
	require.NoError(t, s.Append(a))
	require.NoError(t, s.Append(b))

	s.Clear()
	assert.Zero(t, s.Len())
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.True(t, s.Size().IsZero())

	require.NoError(t, s.Append(img(7, 1)))
	assert.Equal(t, vmath.V2(7, 1), s.Size())
}

func TestCloseIsScoped(t *testing.T) {
	a := img(1, 1)
	func() {
		s := New(1)
		defer s.Close()
		require.NoError(t, s.Append(a))
	}()
	assert.True(t, a.Closed())
}
