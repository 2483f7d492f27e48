package qbf

// movingAverage is an exponential moving average, used to smooth the
// conflict rate exposed in Stats so a caller watching a long-running solve
// can see whether the search is trending toward thrashing (rate near 1, a
// conflict on almost every decision) well before MaxConflicts is hit.
// Adapted from sat.EMA.
type movingAverage struct {
	decay float64
	value float64
	init  bool
}

func newMovingAverage(decay float64) movingAverage {
	return movingAverage{decay: decay}
}

func (m *movingAverage) Add(x float64) {
	if !m.init {
		m.init = true
		m.value = x
		return
	}
	m.value = m.decay*m.value + x*(1-m.decay)
}

func (m *movingAverage) Value() float64 {
	return m.value
}
