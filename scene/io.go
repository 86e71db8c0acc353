package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the serialized form of a scene: the shapes and connectors a
// host would persist between sessions.
type Document struct {
	Shapes     []Shape     `json:"shapes"`
	Connectors []Connector `json:"connectors"`
}

// Load reads and validates a scene document from a JSON file.
func Load(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", filename, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene in %s: %w", filename, err)
	}
	return &doc, nil
}

// Save writes a scene document to a JSON file.
func Save(filename string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Validate checks the structural integrity of a document: unique element
// ids, bindings that reference existing shapes, and connectors with enough
// points to have two endpoints. The engine itself tolerates dangling
// bindings at runtime; a file that contains one is still rejected, because
// on disk it can only be a bug in whatever wrote it.
func (d *Document) Validate() error {
	ids := make(map[string]bool, len(d.Shapes)+len(d.Connectors))
	for _, s := range d.Shapes {
		if s.ID == "" {
			return fmt.Errorf("shape with empty id")
		}
		if ids[s.ID] {
			return fmt.Errorf("duplicate element id: %s", s.ID)
		}
		ids[s.ID] = true
	}
	for _, c := range d.Connectors {
		if c.ID == "" {
			return fmt.Errorf("connector with empty id")
		}
		if ids[c.ID] {
			return fmt.Errorf("duplicate element id: %s", c.ID)
		}
		ids[c.ID] = true
	}

	shapeIDs := make(map[string]bool, len(d.Shapes))
	for _, s := range d.Shapes {
		shapeIDs[s.ID] = true
	}
	for i, c := range d.Connectors {
		if len(c.Points) < 2 {
			return fmt.Errorf("connector %s has %d points, need at least 2", c.ID, len(c.Points))
		}
		if err := checkBinding(i, c.ID, "start", c.StartBinding, shapeIDs); err != nil {
			return err
		}
		if err := checkBinding(i, c.ID, "end", c.EndBinding, shapeIDs); err != nil {
			return err
		}
	}
	return nil
}

func checkBinding(i int, connID, end string, b *Binding, shapeIDs map[string]bool) error {
	if b == nil {
		return nil
	}
	if !shapeIDs[b.ElementID] {
		return fmt.Errorf("connector %d (%s) %s binding references missing shape %s", i, connID, end, b.ElementID)
	}
	// An imprecise binding is center mode; any other fixed point on it is a
	// writer bug.
	if !b.Precise && !b.FixedPoint.IsCenter() {
		return fmt.Errorf("connector %d (%s) %s binding is imprecise but anchored at %v, not the center", i, connID, end, b.FixedPoint)
	}
	return nil
}
