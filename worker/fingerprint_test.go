package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tether/scene"
)

func fpShapes() []scene.Shape {
	return []scene.Shape{
		{ID: "a", Type: scene.Rectangle, X: 0, Y: 0, Width: 100, Height: 100, Visible: true},
		{ID: "b", Type: scene.Ellipse, X: 200, Y: 50, Width: 80, Height: 80, Visible: true},
	}
}

func TestFingerprintStable(t *testing.T) {
	assert.Equal(t, Fingerprint(fpShapes()), Fingerprint(fpShapes()))
}

func TestFingerprintSpatialChange(t *testing.T) {
	base := Fingerprint(fpShapes())

	moved := fpShapes()
	moved[0].X += 10
	assert.NotEqual(t, base, Fingerprint(moved), "a real move changes the fingerprint")

	resized := fpShapes()
	resized[1].Width += 5
	assert.NotEqual(t, base, Fingerprint(resized))

	rotated := fpShapes()
	rotated[0].Rotation = 45
	assert.NotEqual(t, base, Fingerprint(rotated))
}

func TestFingerprintIgnoresJitter(t *testing.T) {
	base := Fingerprint(fpShapes())

	jittered := fpShapes()
	jittered[0].X += 0.1
	jittered[1].Y -= 0.2
	assert.Equal(t, base, Fingerprint(jittered), "sub-quarter-unit jitter is absorbed")
}

func TestFingerprintSkipsNonObstacles(t *testing.T) {
	base := Fingerprint(fpShapes())

	withHidden := append(fpShapes(), scene.Shape{
		ID: "h", Type: scene.Rectangle, X: 500, Y: 500, Width: 10, Height: 10, Visible: false,
	})
	assert.Equal(t, base, Fingerprint(withHidden), "hidden shapes do not contribute")

	withLine := append(fpShapes(), scene.Shape{
		ID: "l", Type: scene.Line, X: 500, Y: 500, Width: 10, Height: 0, Visible: true,
	})
	assert.Equal(t, base, Fingerprint(withLine), "non-connectable shapes do not contribute")
}
