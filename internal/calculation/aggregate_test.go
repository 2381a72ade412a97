package calculation

import (
	"testing"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGrandTotal(t *testing.T) {
	proj := domain.Projection{TotalPastLoss: 10000, TotalFuturePV: 200000}
	hhs := domain.HhsData{TotalPV: 15000}
	lcp := domain.LcpData{TotalPV: 50000}

	assert.Equal(t, 275000.0, GrandTotal(proj, domain.HhServices{Active: true}, hhs, lcp))
	assert.Equal(t, 260000.0, GrandTotal(proj, domain.HhServices{Active: false}, hhs, lcp))
}

func TestSummarize(t *testing.T) {
	proj := domain.Projection{TotalPastLoss: 1, TotalFuturePV: 2}
	s := Summarize(proj, domain.HhServices{Active: false}, domain.HhsData{TotalPV: 4}, domain.LcpData{TotalPV: 8})

	assert.Equal(t, domain.Summary{PastLoss: 1, FutureLossPV: 2, LifeCarePV: 8, GrandTotal: 11}, s)
}
