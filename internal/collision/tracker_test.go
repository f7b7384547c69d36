package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statforge/drawset/errs"
	"github.com/statforge/drawset/internal/hash"
)

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("b_Intercept", hash.ID("b_Intercept")))
	require.NoError(t, tracker.Track("b_x1", hash.ID("b_x1")))

	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"b_Intercept", "b_x1"}, tracker.Names())
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()
	require.ErrorIs(t, tracker.Track("", hash.ID("")), errs.ErrInvalidName)
}

func TestTracker_Track_DuplicateName(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("lp__", hash.ID("lp__")))
	require.ErrorIs(t, tracker.Track("lp__", hash.ID("lp__")), errs.ErrDuplicateName)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Track_HashCollision(t *testing.T) {
	tracker := NewTracker()

	// Same ID claimed by two different names.
	require.NoError(t, tracker.Track("b_x1", 42))
	require.ErrorIs(t, tracker.Track("b_x2", 42), errs.ErrHashCollision)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Track("b_x1", hash.ID("b_x1")))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.NoError(t, tracker.Track("b_x1", hash.ID("b_x1")))
}
