package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tether/scene"
)

func TestAddBoundElement(t *testing.T) {
	s := scene.Shape{ID: "a", Type: scene.Rectangle}
	ref := scene.BoundElement{ID: "c1", Type: scene.Arrow}

	added := AddBoundElement(s, ref)
	require.Len(t, added.BoundElements, 1)
	assert.Empty(t, s.BoundElements, "input shape is not mutated")

	// Adding the same reference again is a no-op.
	again := AddBoundElement(added, ref)
	assert.Len(t, again.BoundElements, 1)
}

func TestRemoveBoundElement(t *testing.T) {
	s := scene.Shape{ID: "a", BoundElements: []scene.BoundElement{
		{ID: "c1", Type: scene.Arrow},
		{ID: "c2", Type: scene.Arrow},
	}}

	removed := RemoveBoundElement(s, "c1")
	require.Len(t, removed.BoundElements, 1)
	assert.Equal(t, "c2", removed.BoundElements[0].ID)
	assert.Len(t, s.BoundElements, 2, "input shape is not mutated")

	// Removing an absent id returns the shape unchanged.
	same := RemoveBoundElement(s, "nope")
	assert.Len(t, same.BoundElements, 2)
}

func TestSyncBoundElements(t *testing.T) {
	shapes := []scene.Shape{
		{ID: "a", Type: scene.Rectangle, BoundElements: []scene.BoundElement{{ID: "c", Type: scene.Arrow}}},
		{ID: "b", Type: scene.Rectangle},
	}
	idx := scene.NewIndex(shapes)

	var updated []scene.Shape
	record := func(s scene.Shape) { updated = append(updated, s) }

	// Rebinding from a to b removes the backref on a and adds it on b.
	oldB := &scene.Binding{ElementID: "a"}
	newB := &scene.Binding{ElementID: "b"}
	SyncBoundElements("c", scene.Arrow, oldB, newB, idx, record)

	require.Len(t, updated, 2)
	assert.Equal(t, "a", updated[0].ID)
	assert.Empty(t, updated[0].BoundElements)
	assert.Equal(t, "b", updated[1].ID)
	require.Len(t, updated[1].BoundElements, 1)
	assert.Equal(t, "c", updated[1].BoundElements[0].ID)
}

func TestSyncBoundElementsSameTarget(t *testing.T) {
	shapes := []scene.Shape{
		{ID: "a", Type: scene.Rectangle, BoundElements: []scene.BoundElement{{ID: "c", Type: scene.Arrow}}},
	}
	idx := scene.NewIndex(shapes)

	called := false
	b := &scene.Binding{ElementID: "a"}
	SyncBoundElements("c", scene.Arrow, b, b, idx, func(scene.Shape) { called = true })
	assert.False(t, called, "no update when the target did not change")
}

func TestSyncBoundElementsToNone(t *testing.T) {
	shapes := []scene.Shape{
		{ID: "a", Type: scene.Rectangle, BoundElements: []scene.BoundElement{{ID: "c", Type: scene.Arrow}}},
	}
	idx := scene.NewIndex(shapes)

	var updated []scene.Shape
	SyncBoundElements("c", scene.Arrow, &scene.Binding{ElementID: "a"}, nil, idx, func(s scene.Shape) {
		updated = append(updated, s)
	})
	require.Len(t, updated, 1)
	assert.Empty(t, updated[0].BoundElements)
}

func TestClearBindingsForDeletedElements(t *testing.T) {
	shapes := []scene.Shape{
		{ID: "a", Type: scene.Rectangle, BoundElements: []scene.BoundElement{
			{ID: "conn", Type: scene.Arrow},
			{ID: "other", Type: scene.Arrow},
		}},
		{ID: "b", Type: scene.Rectangle, BoundElements: []scene.BoundElement{{ID: "conn", Type: scene.Arrow}}},
	}
	connectors := []scene.Connector{
		{
			ID:           "conn",
			Points:       []scene.Point{{}, {X: 10, Y: 0}},
			StartBinding: &scene.Binding{ElementID: "a"},
			EndBinding:   &scene.Binding{ElementID: "dead"},
		},
	}

	deleted := map[string]bool{"dead": true, "conn": true}
	outShapes, outConns := ClearBindingsForDeletedElements(deleted, shapes, connectors)

	// Every backref to the deleted connector is gone.
	require.Len(t, outShapes, 2)
	require.Len(t, outShapes[0].BoundElements, 1)
	assert.Equal(t, "other", outShapes[0].BoundElements[0].ID)
	assert.Empty(t, outShapes[1].BoundElements)

	// The binding onto the deleted shape is nulled; the live one survives.
	require.Len(t, outConns, 1)
	assert.NotNil(t, outConns[0].StartBinding)
	assert.Nil(t, outConns[0].EndBinding)

	// Inputs are untouched.
	assert.Len(t, shapes[0].BoundElements, 2)
	assert.NotNil(t, connectors[0].EndBinding)
}

func TestClearBindingsIdentityWhenUntouched(t *testing.T) {
	shapes := []scene.Shape{
		{ID: "a", Type: scene.Rectangle, BoundElements: []scene.BoundElement{{ID: "conn", Type: scene.Arrow}}},
	}
	connectors := []scene.Connector{
		{ID: "conn", StartBinding: &scene.Binding{ElementID: "a"}},
	}

	outShapes, outConns := ClearBindingsForDeletedElements(map[string]bool{"unrelated": true}, shapes, connectors)
	assert.Equal(t, &shapes[0], &outShapes[0], "untouched slice returned by identity")
	assert.Equal(t, &connectors[0], &outConns[0], "untouched slice returned by identity")
}
