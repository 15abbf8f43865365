package game

type Chart struct {
	// AudioOffset is read from the AudioOffset directive. Note times are
	// never shifted by it unless the caller asks for that explicitly.
	AudioOffset Tick
	Notes       []Note
	Sum         string // Hash of the chart text

	// Diagnostics are lines that matched a grammar but were dropped
	Diagnostics []error

	TapCount, HoldCount, ArcCount, BlackCurveCount int64
}

// Count tallies note kinds after parsing
func (c *Chart) Count() {
	c.TapCount, c.HoldCount, c.ArcCount, c.BlackCurveCount = 0, 0, 0, 0
	for i := range c.Notes {
		switch c.Notes[i].Kind {
		case Tap:
			c.TapCount++
		case Hold:
			c.HoldCount++
		case Arc:
			c.ArcCount++
		case BlackCurve:
			c.BlackCurveCount++
		}
	}
}
