package stack

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/core/series"
)

// Group is a set of series laid out as one stack.
type Group struct {
	StackID string
	YAxisID string
	Series  []int // Indices into the chart's series, in chart order
}

// Groups partitions series by (StackID, YAxisID) in first-appearance order.
// Series without a stack id form singleton groups.
func Groups(ss []series.Series) []Group {
	var groups []Group
	pos := map[[2]string]int{}
	for i, s := range ss {
		if s.StackID == "" {
			groups = append(groups, Group{YAxisID: s.YAxisID, Series: []int{i}})
			continue
		}
		key := [2]string{s.StackID, s.YAxisID}
		if g, ok := pos[key]; ok {
			groups[g].Series = append(groups[g].Series, i)
			continue
		}
		pos[key] = len(groups)
		groups = append(groups, Group{StackID: s.StackID, YAxisID: s.YAxisID, Series: []int{i}})
	}
	return groups
}

// Select returns the series of the group.
func (g Group) Select(ss []series.Series) []series.Series {
	out := make([]series.Series, 0, len(g.Series))
	for _, i := range g.Series {
		if i >= 0 && i < len(ss) {
			out = append(out, ss[i])
		}
	}
	return out
}

// Slot is a horizontal sub-band of a category.
type Slot struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Slots divides a category band of the given width into n side-by-side slots
// separated by gap pixels.
func Slots(x, width float64, n int, gap float64) []Slot {
	if n <= 0 {
		return nil
	}
	gap = math.Max(0, gap)
	w := math.Max(0, (width-gap*float64(n-1))/float64(n))
	out := make([]Slot, n)
	for i := range out {
		out[i] = Slot{X: x + float64(i)*(w+gap), Width: w}
	}
	return out
}
