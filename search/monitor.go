package search

import "github.com/poiesic/harvest/core"

// SearchMonitor provides hooks to observe the search process.
type SearchMonitor interface {
	Start(query Query)
	AfterVectorSearch(hits []core.Hit)
	Filtered(hit core.Hit)
	VerbatimHit(hit core.Hit)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                  {}
func (n *noopMonitor) AfterVectorSearch(_ []core.Hit) {}
func (n *noopMonitor) Filtered(_ core.Hit)            {}
func (n *noopMonitor) VerbatimHit(_ core.Hit)         {}
func (n *noopMonitor) Finish(_ []*Result)             {}
