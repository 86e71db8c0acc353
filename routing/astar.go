package routing

import (
	"container/heap"
	"fmt"
	"math"

	"tether/scene"
)

// searchNode represents a state in the lattice A* search.
type searchNode struct {
	ix, iy int
	gCost  float64 // Cost from start
	hCost  float64 // Heuristic cost to goal
	fCost  float64 // gCost + hCost
	parent *searchNode
	dir    Direction // Direction we entered this node from
	index  int       // Index in the heap
}

// nodeQueue is a priority queue for search nodes.
type nodeQueue []*searchNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].fCost != nq[j].fCost {
		return nq[i].fCost < nq[j].fCost
	}
	// Tie-breaker 1: prefer nodes closer to the goal
	if nq[i].hCost != nq[j].hCost {
		return nq[i].hCost < nq[j].hCost
	}
	// Tie-breaker 2: deterministic position order
	if nq[i].ix != nq[j].ix {
		return nq[i].ix < nq[j].ix
	}
	return nq[i].iy < nq[j].iy
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	n := len(*nq)
	node := x.(*searchNode)
	node.index = n
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*nq = old[0 : n-1]
	return node
}

// nodeKey is used for map lookups.
type nodeKey struct {
	ix, iy int
}

// lattice is the irregular routing grid: the sorted x and y coordinates that
// candidate paths may travel along, derived from endpoints and obstacle
// edges. Searching over the lattice instead of a uniform pixel grid keeps
// the node count proportional to the number of obstacles.
type lattice struct {
	xs, ys  []float64
	blocked ObstacleChecker
}

func (l *lattice) point(k nodeKey) scene.Point {
	return scene.Point{X: l.xs[k.ix], Y: l.ys[k.iy]}
}

// indexOf finds the lattice index pair of a point. The point must have been
// included when the lattice was built.
func (l *lattice) indexOf(p scene.Point) (nodeKey, bool) {
	ix, okx := indexOfCoord(l.xs, p.X)
	iy, oky := indexOfCoord(l.ys, p.Y)
	return nodeKey{ix, iy}, okx && oky
}

func indexOfCoord(coords []float64, v float64) (int, bool) {
	for i, c := range coords {
		if math.Abs(c-v) < 1e-9 {
			return i, true
		}
	}
	return 0, false
}

// neighbor pairs a lattice key with the direction of travel into it.
type neighbor struct {
	key nodeKey
	dir Direction
}

// neighbors appends the 4-connected lattice neighbors of k to buf.
func (l *lattice) neighbors(k nodeKey, buf []neighbor) []neighbor {
	buf = buf[:0]
	if k.iy > 0 {
		buf = append(buf, neighbor{nodeKey{k.ix, k.iy - 1}, North})
	}
	if k.ix < len(l.xs)-1 {
		buf = append(buf, neighbor{nodeKey{k.ix + 1, k.iy}, East})
	}
	if k.iy < len(l.ys)-1 {
		buf = append(buf, neighbor{nodeKey{k.ix, k.iy + 1}, South})
	}
	if k.ix > 0 {
		buf = append(buf, neighbor{nodeKey{k.ix - 1, k.iy}, West})
	}
	return buf
}

// findPath runs A* over the lattice from start to goal. initialDir biases
// the first move (turning away from it costs a turn penalty), and when
// goalDir is not DirNone the path must arrive at the goal moving in that
// direction, so the caller can extend it without a reversal.
func (l *lattice) findPath(start, goal nodeKey, initialDir, goalDir Direction, turnCost float64, maxNodes int) ([]scene.Point, error) {
	if start == goal {
		return []scene.Point{l.point(start)}, nil
	}
	if l.blocked(l.point(start)) {
		return nil, fmt.Errorf("start point is blocked")
	}
	if l.blocked(l.point(goal)) {
		return nil, fmt.Errorf("goal point is blocked")
	}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	closedSet := make(map[nodeKey]bool)
	nodeMap := make(map[nodeKey]*searchNode)

	startNode := &searchNode{
		ix:    start.ix,
		iy:    start.iy,
		dir:   initialDir,
		hCost: l.heuristic(start, goal, turnCost),
	}
	startNode.fCost = startNode.hCost

	heap.Push(openSet, startNode)
	nodeMap[start] = startNode

	explored := 0
	nbuf := make([]neighbor, 0, 4)
	for openSet.Len() > 0 {
		explored++
		if explored > maxNodes {
			return nil, fmt.Errorf("pathfinding exceeded node limit")
		}

		current := heap.Pop(openSet).(*searchNode)
		currentKey := nodeKey{current.ix, current.iy}

		if currentKey == goal {
			return l.reconstructPath(current), nil
		}

		closedSet[currentKey] = true

		nbuf = l.neighbors(currentKey, nbuf)
		for _, n := range nbuf {
			if closedSet[n.key] {
				continue
			}
			if l.blocked(l.point(n.key)) {
				continue
			}
			// Only enter the goal moving in the required direction, so the
			// caller can extend the path past it without a reversal.
			if goalDir != DirNone && n.key == goal && n.dir != goalDir {
				continue
			}

			tentative := l.moveCost(current, n.key, n.dir, turnCost)

			existing, exists := nodeMap[n.key]
			if !exists {
				node := &searchNode{
					ix:     n.key.ix,
					iy:     n.key.iy,
					gCost:  tentative,
					hCost:  l.heuristic(n.key, goal, turnCost),
					parent: current,
					dir:    n.dir,
				}
				node.fCost = node.gCost + node.hCost
				heap.Push(openSet, node)
				nodeMap[n.key] = node
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = existing.gCost + existing.hCost
				existing.parent = current
				existing.dir = n.dir
				heap.Fix(openSet, existing.index)
			}
		}
	}

	return nil, fmt.Errorf("no path found")
}

// heuristic estimates the remaining cost: Manhattan distance in world units
// plus one turn if both axes still differ.
func (l *lattice) heuristic(from, goal nodeKey, turnCost float64) float64 {
	p := l.point(from)
	g := l.point(goal)
	dx := math.Abs(g.X - p.X)
	dy := math.Abs(g.Y - p.Y)
	h := dx + dy
	if dx > 0 && dy > 0 {
		h += turnCost
	}
	return h
}

// moveCost is the accumulated cost of stepping from current to next: the
// world distance plus turn penalties. Turning again immediately after a
// previous turn pays double, which suppresses zigzag staircases.
func (l *lattice) moveCost(current *searchNode, next nodeKey, nextDir Direction, turnCost float64) float64 {
	from := l.point(nodeKey{current.ix, current.iy})
	to := l.point(next)
	cost := math.Abs(to.X-from.X) + math.Abs(to.Y-from.Y)

	if current.dir != DirNone && current.dir != nextDir {
		cost += turnCost
		if current.parent != nil && current.parent.dir != DirNone && current.parent.dir != current.dir {
			cost += turnCost
		}
	}
	return current.gCost + cost
}

// reconstructPath walks backwards from the goal node.
func (l *lattice) reconstructPath(goalNode *searchNode) []scene.Point {
	var count int
	for n := goalNode; n != nil; n = n.parent {
		count++
	}
	points := make([]scene.Point, count)
	for n := goalNode; n != nil; n = n.parent {
		count--
		points[count] = l.point(nodeKey{n.ix, n.iy})
	}
	return points
}
