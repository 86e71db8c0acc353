package binding

import "tether/scene"

// AddBoundElement returns a shape with the back-reference appended. Adding a
// reference that is already present (by id) returns the shape unchanged. The
// input is never mutated.
func AddBoundElement(s scene.Shape, ref scene.BoundElement) scene.Shape {
	for _, existing := range s.BoundElements {
		if existing.ID == ref.ID {
			return s
		}
	}
	out := s
	out.BoundElements = make([]scene.BoundElement, 0, len(s.BoundElements)+1)
	out.BoundElements = append(out.BoundElements, s.BoundElements...)
	out.BoundElements = append(out.BoundElements, ref)
	return out
}

// RemoveBoundElement returns a shape with the back-reference for id removed.
// Removing an absent reference returns the shape unchanged.
func RemoveBoundElement(s scene.Shape, id string) scene.Shape {
	found := false
	for _, existing := range s.BoundElements {
		if existing.ID == id {
			found = true
			break
		}
	}
	if !found {
		return s
	}
	out := s
	out.BoundElements = make([]scene.BoundElement, 0, len(s.BoundElements)-1)
	for _, existing := range s.BoundElements {
		if existing.ID != id {
			out.BoundElements = append(out.BoundElements, existing)
		}
	}
	return out
}

// SyncBoundElements updates shape back-references when a connector's binding
// moves from one target to another, or to or from none. The update callback
// fires only for shapes that actually changed; rebinding to the same target
// is a no-op.
func SyncBoundElements(connectorID string, t scene.ShapeType, oldBinding, newBinding *scene.Binding, idx scene.Index, update func(scene.Shape)) {
	var oldID, newID string
	if oldBinding != nil {
		oldID = oldBinding.ElementID
	}
	if newBinding != nil {
		newID = newBinding.ElementID
	}
	if oldID == newID {
		return
	}

	if s := idx.Lookup(oldID); s != nil {
		removed := RemoveBoundElement(*s, connectorID)
		if len(removed.BoundElements) != len(s.BoundElements) {
			update(removed)
		}
	}
	if s := idx.Lookup(newID); s != nil {
		added := AddBoundElement(*s, scene.BoundElement{ID: connectorID, Type: t})
		if len(added.BoundElements) != len(s.BoundElements) {
			update(added)
		}
	}
}

// ClearBindingsForDeletedElements strips every bound-element entry and every
// connector binding that references a deleted id. Elements untouched by the
// pass are returned by identity; when nothing references a deleted id the
// original slices come back unchanged.
func ClearBindingsForDeletedElements(deleted map[string]bool, shapes []scene.Shape, connectors []scene.Connector) ([]scene.Shape, []scene.Connector) {
	outShapes := shapes
	shapesCopied := false
	for i := range shapes {
		stripped, changed := stripBoundElements(shapes[i], deleted)
		if !changed {
			continue
		}
		if !shapesCopied {
			outShapes = make([]scene.Shape, len(shapes))
			copy(outShapes, shapes)
			shapesCopied = true
		}
		outShapes[i] = stripped
	}

	outConns := connectors
	connsCopied := false
	for i := range connectors {
		stripped, changed := stripConnectorBindings(connectors[i], deleted)
		if !changed {
			continue
		}
		if !connsCopied {
			outConns = make([]scene.Connector, len(connectors))
			copy(outConns, connectors)
			connsCopied = true
		}
		outConns[i] = stripped
	}

	return outShapes, outConns
}

func stripBoundElements(s scene.Shape, deleted map[string]bool) (scene.Shape, bool) {
	hit := false
	for _, ref := range s.BoundElements {
		if deleted[ref.ID] {
			hit = true
			break
		}
	}
	if !hit {
		return s, false
	}
	out := s
	out.BoundElements = make([]scene.BoundElement, 0, len(s.BoundElements))
	for _, ref := range s.BoundElements {
		if !deleted[ref.ID] {
			out.BoundElements = append(out.BoundElements, ref)
		}
	}
	return out, true
}

func stripConnectorBindings(c scene.Connector, deleted map[string]bool) (scene.Connector, bool) {
	changed := false
	if c.StartBinding != nil && deleted[c.StartBinding.ElementID] {
		c.StartBinding = nil
		changed = true
	}
	if c.EndBinding != nil && deleted[c.EndBinding.ElementID] {
		c.EndBinding = nil
		changed = true
	}
	return c, changed
}
