// Package path plans routes across the world grid. The planner is a pure
// function of its inputs: it never mutates the grid it searches.
package path

import (
	"container/heap"
	"math"

	"agentstead/server/internal/grid"
)

// Point is one grid cell in a planned route.
type Point struct {
	X int `json:"x"`
	Z int `json:"z"`
}

type neighborOffset struct {
	dx   int
	dz   int
	cost float64
}

var neighborOffsets = [...]neighborOffset{
	{dx: 0, dz: -1, cost: 1},
	{dx: 1, dz: 0, cost: 1},
	{dx: 0, dz: 1, cost: 1},
	{dx: -1, dz: 0, cost: 1},
	{dx: 1, dz: -1, cost: math.Sqrt2},
	{dx: 1, dz: 1, cost: math.Sqrt2},
	{dx: -1, dz: 1, cost: math.Sqrt2},
	{dx: -1, dz: -1, cost: math.Sqrt2},
}

// heuristic is Manhattan distance. With √2 diagonal steps this can
// over-estimate on diagonal-heavy routes, so returned paths are not always
// cost-optimal. Inherited behavior, kept as-is.
func heuristic(x, z, goalX, goalZ int) float64 {
	return math.Abs(float64(x-goalX)) + math.Abs(float64(z-goalZ))
}

type searchNode struct {
	x, z   int
	g      float64
	f      float64
	seq    int
	index  int
	parent *searchNode
}

type searchQueue []*searchNode

func (pq searchQueue) Len() int { return len(pq) }

// Ties on f resolve by insertion order, so equal-cost frontiers expand
// first-found first.
func (pq searchQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq searchQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *searchQueue) Push(x any) {
	n := len(*pq)
	item := x.(*searchNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *searchQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// Find runs A* over 8-connected cells from (startX, startZ) to (endX, endZ).
// Orthogonal steps cost 1, diagonals √2. Diagonal moves are not corner-checked:
// a diagonal squeeze past two blocked orthogonal cells is permitted. The
// returned route starts at the first cell after the start and ends at the goal
// cell; nil means no path exists.
func Find(startX, startZ, endX, endZ int, g *grid.Grid) []Point {
	if g == nil || !g.InBounds(startX, startZ) || !g.InBounds(endX, endZ) {
		return nil
	}
	if !g.Walkable(endX, endZ) {
		return nil
	}
	if startX == endX && startZ == endZ {
		return []Point{}
	}

	width := g.Width()
	index := func(x, z int) int { return z*width + x }

	open := &searchQueue{}
	heap.Init(open)
	seq := 0
	start := &searchNode{x: startX, z: startZ, g: 0, f: heuristic(startX, startZ, endX, endZ), seq: seq}
	heap.Push(open, start)
	gScore := map[int]float64{index(startX, startZ): 0}
	closed := make(map[int]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		currIdx := index(current.x, current.z)
		if _, seen := closed[currIdx]; seen {
			continue
		}
		closed[currIdx] = struct{}{}
		if current.x == endX && current.z == endZ {
			return reconstruct(current)
		}

		for _, delta := range neighborOffsets {
			nx := current.x + delta.dx
			nz := current.z + delta.dz
			if !g.Walkable(nx, nz) {
				continue
			}
			idx := index(nx, nz)
			if _, seen := closed[idx]; seen {
				continue
			}
			tentative := current.g + delta.cost
			if prev, ok := gScore[idx]; ok && tentative >= prev {
				continue
			}
			gScore[idx] = tentative
			seq++
			heap.Push(open, &searchNode{
				x:      nx,
				z:      nz,
				g:      tentative,
				f:      tentative + heuristic(nx, nz, endX, endZ),
				seq:    seq,
				parent: current,
			})
		}
	}
	return nil
}

// reconstruct walks parents back to the start, then reverses. The start cell
// itself is dropped: routes begin at the start's successor.
func reconstruct(end *searchNode) []Point {
	nodes := make([]Point, 0)
	for node := end; node != nil; node = node.parent {
		nodes = append(nodes, Point{X: node.x, Z: node.z})
	}
	for i := 0; i < len(nodes)/2; i++ {
		j := len(nodes) - 1 - i
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	if len(nodes) <= 1 {
		return []Point{}
	}
	return nodes[1:]
}

// Cost sums the step costs of a route beginning at (startX, startZ).
func Cost(startX, startZ int, route []Point) float64 {
	total := 0.0
	x, z := startX, startZ
	for _, p := range route {
		dx := p.X - x
		dz := p.Z - z
		if dx != 0 && dz != 0 {
			total += math.Sqrt2
		} else {
			total += 1
		}
		x, z = p.X, p.Z
	}
	return total
}
