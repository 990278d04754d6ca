package analysis

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cell addresses one grid cell.
type Cell struct {
	Row, Col int
}

// Components groups the true cells of mask into 4-connected regions. Each
// region is sorted row-major and regions are ordered by their first cell.
func Components(mask [][]bool) [][]Cell {
	if len(mask) == 0 {
		return nil
	}
	w := 0
	for _, row := range mask {
		if len(row) > w {
			w = len(row)
		}
	}
	id := func(i, j int) int64 { return int64(i*w + j) }
	on := func(i, j int) bool {
		return i >= 0 && i < len(mask) && j >= 0 && j < len(mask[i]) && mask[i][j]
	}

	g := simple.NewUndirectedGraph()
	for i, row := range mask {
		for j, v := range row {
			if v {
				g.AddNode(simple.Node(id(i, j)))
			}
		}
	}
	for i, row := range mask {
		for j, v := range row {
			if !v {
				continue
			}
			if on(i, j+1) {
				g.SetEdge(simple.Edge{F: simple.Node(id(i, j)), T: simple.Node(id(i, j+1))})
			}
			if on(i+1, j) {
				g.SetEdge(simple.Edge{F: simple.Node(id(i, j)), T: simple.Node(id(i+1, j))})
			}
		}
	}

	comps := topo.ConnectedComponents(g)
	out := make([][]Cell, 0, len(comps))
	for _, comp := range comps {
		cells := make([]Cell, len(comp))
		for k, n := range comp {
			cells[k] = Cell{Row: int(n.ID()) / w, Col: int(n.ID()) % w}
		}
		sort.Slice(cells, func(a, b int) bool { return less(cells[a], cells[b]) })
		out = append(out, cells)
	}
	sort.Slice(out, func(a, b int) bool { return less(out[a][0], out[b][0]) })
	return out
}

func less(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Regions counts the 4-connected inside regions of mask.
func Regions(mask [][]bool) int {
	return len(Components(mask))
}

// Largest returns the cell count of the biggest region, or 0.
func Largest(mask [][]bool) int {
	n := 0
	for _, c := range Components(mask) {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// Coverage is the fraction of cells in mask that are true.
func Coverage(mask [][]bool) float64 {
	total, inside := 0, 0
	for _, row := range mask {
		for _, v := range row {
			total++
			if v {
				inside++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(inside) / float64(total)
}
