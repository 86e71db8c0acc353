// Command tetherview is an interactive sandbox for the connector engine: a
// small scene rendered in the terminal where shapes can be dragged around
// with the keyboard while their connectors re-anchor and re-route live.
//
// Usage: tetherview [scene.json]
//
// Without an argument a built-in sample scene is used.
//
//	Tab        cycle the selected shape
//	arrows     move the selected shape
//	q / Esc    quit
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"

	"tether/binding"
	"tether/scene"
	"tether/worker"
)

// World units map 1:1 onto terminal cells, so the sample shapes are sized in
// character cells.
func sampleScene() ([]scene.Shape, []scene.Connector) {
	shapes := []scene.Shape{
		{ID: "ingest", Type: scene.Rectangle, X: 4, Y: 2, Width: 18, Height: 5, Visible: true},
		{ID: "queue", Type: scene.Diamond, X: 36, Y: 10, Width: 16, Height: 7, Visible: true},
		{ID: "store", Type: scene.Rectangle, X: 64, Y: 3, Width: 18, Height: 5, Visible: true},
		{ID: "cache", Type: scene.Ellipse, X: 62, Y: 16, Width: 20, Height: 5, Visible: true},
	}
	connectors := []scene.Connector{
		{
			ID: "c1", LineType: scene.Elbow,
			Points:       []scene.Point{{}, {X: 1, Y: 1}},
			StartBinding: &scene.Binding{ElementID: "ingest", FixedPoint: scene.CenterFixedPoint, Gap: 1},
			EndBinding:   &scene.Binding{ElementID: "queue", FixedPoint: scene.CenterFixedPoint, Gap: 1},
		},
		{
			ID: "c2", LineType: scene.Elbow,
			Points:       []scene.Point{{}, {X: 1, Y: 1}},
			StartBinding: &scene.Binding{ElementID: "queue", FixedPoint: scene.CenterFixedPoint, Gap: 1},
			EndBinding:   &scene.Binding{ElementID: "store", FixedPoint: scene.CenterFixedPoint, Gap: 1},
		},
		{
			ID: "c3", LineType: scene.Elbow,
			Points:       []scene.Point{{}, {X: 1, Y: 1}},
			StartBinding: &scene.Binding{ElementID: "queue", FixedPoint: scene.CenterFixedPoint, Gap: 1},
			EndBinding:   &scene.Binding{ElementID: "cache", FixedPoint: scene.CenterFixedPoint, Gap: 1},
		},
	}
	return shapes, connectors
}

type app struct {
	screen     tcell.Screen
	shapes     []scene.Shape
	connectors []scene.Connector
	selected   int

	svc       *worker.Service
	consumers map[string]*worker.Consumer
}

func main() {
	shapes, connectors := sampleScene()
	if len(os.Args) > 1 {
		doc, err := scene.Load(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "tetherview: %v\n", err)
			os.Exit(1)
		}
		shapes, connectors = doc.Shapes, doc.Connectors
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tetherview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "tetherview: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)

	cfg := worker.DefaultConfig()
	cfg.Routing.Gap = 1
	cfg.Routing.Margin = 3
	svc := worker.NewService(cfg)
	defer svc.Close()

	a := &app{
		screen:     screen,
		shapes:     shapes,
		connectors: connectors,
		svc:        svc,
		consumers:  make(map[string]*worker.Consumer),
	}
	for i := range connectors {
		// Async results land on the worker goroutine; poke the event loop so
		// the superseding route paints without waiting for a keypress.
		a.consumers[connectors[i].ID] = svc.NewConsumer(func([]scene.Point) {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
	}

	a.loop()
}

func (a *app) loop() {
	for {
		a.resolve()
		a.draw()
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyTab:
				if len(a.shapes) > 0 {
					a.selected = (a.selected + 1) % len(a.shapes)
				}
			case tcell.KeyUp:
				a.moveSelected(0, -1)
			case tcell.KeyDown:
				a.moveSelected(0, 1)
			case tcell.KeyLeft:
				a.moveSelected(-2, 0)
			case tcell.KeyRight:
				a.moveSelected(2, 0)
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return
				}
			}
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
}

func (a *app) moveSelected(dx, dy float64) {
	if len(a.shapes) == 0 {
		return
	}
	s := &a.shapes[a.selected]
	s.X += dx
	s.Y += dy
}

// resolve re-anchors every connector to its bound shapes and re-routes the
// elbow ones through the worker facade.
func (a *app) resolve() {
	a.svc.UpdateElements(a.shapes)
	idx := scene.NewIndex(a.shapes)

	for i := range a.connectors {
		c := &a.connectors[i]
		if update := binding.RecomputeBoundPoints(*c, idx); update != nil {
			c.X, c.Y = update.X, update.Y
			c.Points = update.Points
		}
		if c.LineType != scene.Elbow || len(c.Points) < 2 {
			continue
		}
		params := worker.RouteParams{
			Start:   c.Start(),
			End:     c.End(),
			MinStub: 2,
		}
		if c.StartBinding != nil {
			params.StartShapeID = c.StartBinding.ElementID
		}
		if c.EndBinding != nil {
			params.EndShapeID = c.EndBinding.ElementID
		}
		c.Points = a.consumers[c.ID].Route(params)
	}
}

func (a *app) draw() {
	a.screen.Clear()
	for i := range a.connectors {
		a.drawConnector(&a.connectors[i])
	}
	for i := range a.shapes {
		a.drawShape(&a.shapes[i], i == a.selected)
	}
	a.drawStatus()
	a.screen.Show()
}

func (a *app) drawShape(s *scene.Shape, selected bool) {
	style := tcell.StyleDefault
	if selected {
		style = style.Foreground(tcell.ColorYellow).Bold(true)
	}

	x0, y0 := int(s.X), int(s.Y)
	x1, y1 := int(s.X+s.Width), int(s.Y+s.Height)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if s.Type == scene.Ellipse {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	for x := x0 + 1; x < x1; x++ {
		a.screen.SetContent(x, y0, '─', nil, style)
		a.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		a.screen.SetContent(x0, y, '│', nil, style)
		a.screen.SetContent(x1, y, '│', nil, style)
	}
	a.screen.SetContent(x0, y0, tl, nil, style)
	a.screen.SetContent(x1, y0, tr, nil, style)
	a.screen.SetContent(x0, y1, bl, nil, style)
	a.screen.SetContent(x1, y1, br, nil, style)

	label := s.ID
	if s.Type == scene.Diamond {
		label = "◇ " + label
	}
	cy := (y0 + y1) / 2
	cx := (x0+x1)/2 - len([]rune(label))/2
	for j, r := range label {
		a.screen.SetContent(cx+j, cy, r, nil, style)
	}
}

func (a *app) drawConnector(c *scene.Connector) {
	style := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	origin := c.Origin()

	for i := 0; i < len(c.Points)-1; i++ {
		p0 := origin.Add(c.Points[i])
		p1 := origin.Add(c.Points[i+1])
		a.drawSegment(p0, p1, style)
		if i > 0 {
			a.screen.SetContent(int(p0.X), int(p0.Y), '•', nil, style)
		}
	}
	if n := len(c.Points); n >= 2 {
		end := origin.Add(c.Points[n-1])
		prev := origin.Add(c.Points[n-2])
		a.screen.SetContent(int(end.X), int(end.Y), arrowhead(prev, end), nil, style)
	}
}

func (a *app) drawSegment(p0, p1 scene.Point, style tcell.Style) {
	x0, y0 := int(p0.X), int(p0.Y)
	x1, y1 := int(p1.X), int(p1.Y)
	switch {
	case y0 == y1:
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			a.screen.SetContent(x, y0, '─', nil, style)
		}
	case x0 == x1:
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			a.screen.SetContent(x0, y, '│', nil, style)
		}
	default:
		// Non-orthogonal fallback segment: a crude rasterized line.
		steps := int(math.Max(math.Abs(p1.X-p0.X), math.Abs(p1.Y-p0.Y)))
		if steps == 0 {
			a.screen.SetContent(x0, y0, '·', nil, style)
			return
		}
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			x := int(p0.X + (p1.X-p0.X)*t)
			y := int(p0.Y + (p1.Y-p0.Y)*t)
			a.screen.SetContent(x, y, '·', nil, style)
		}
	}
}

func arrowhead(from, to scene.Point) rune {
	dx, dy := to.X-from.X, to.Y-from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

func (a *app) drawStatus() {
	_, h := a.screen.Size()
	selected := "-"
	if len(a.shapes) > 0 {
		selected = a.shapes[a.selected].ID
	}
	msg := fmt.Sprintf(" %s  Tab: select  arrows: move  q: quit  %s",
		selected, a.svc.CacheStats())
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range msg {
		a.screen.SetContent(i, h-1, r, nil, style)
	}
}
