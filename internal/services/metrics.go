package services

import "sync/atomic"

// Metrics holds process-wide counters exposed on /actuator/metrics.
// A nil *Metrics ignores increments.
type Metrics struct {
	beersCreated atomic.Int64
	beerLists    atomic.Int64
}

func (m *Metrics) beerCreated() {
	if m != nil {
		m.beersCreated.Add(1)
	}
}

func (m *Metrics) beerListed() {
	if m != nil {
		m.beerLists.Add(1)
	}
}

func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"beer.object.count": m.beersCreated.Load(),
		"beer.list.count":   m.beerLists.Load(),
	}
}
