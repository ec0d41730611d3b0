package compare

import (
	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

// collector accumulates differences up to a cap. Discovering one more
// difference once the cap is reached appends the overflow sentinel and
// marks the collector full; algorithms stop scanning at that point.
type collector struct {
	max   int
	diffs []models.Difference
	full  bool
}

func newCollector(max int) *collector {
	return &collector{max: max, diffs: []models.Difference{}}
}

// add records d and reports whether it was kept
func (c *collector) add(d models.Difference) bool {
	if c.full {
		return false
	}
	if len(c.diffs) >= c.max {
		c.diffs = append(c.diffs, models.Overflow())
		c.full = true
		return false
	}
	c.diffs = append(c.diffs, d)
	return true
}

// done reports whether comparison should stop
func (c *collector) done() bool {
	return c.full
}

func (c *collector) result() []models.Difference {
	return c.diffs
}
