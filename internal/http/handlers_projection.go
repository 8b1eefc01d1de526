package http

import (
	"net/http"

	"finbud/internal/core"
	"finbud/internal/projection"
)

type compoundProjectionResponse struct {
	PrincipalCents           int64                  `json:"principalCents"`
	MonthlyContributionCents int64                  `json:"monthlyContributionCents"`
	AnnualRate               float64                `json:"annualRate"`
	Years                    int                    `json:"years"`
	YearPoints               []projection.YearPoint `json:"yearPoints"`
}

func (s *Server) handleCompoundProjection(w http.ResponseWriter, r *http.Request) {
	principal, err := queryInt64(r, "principalCents", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contribution, err := queryInt64(r, "monthlyContributionCents", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rate, err := queryFloat(r, "annualRate", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	years, err := queryInt(r, "years", 10)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if years < 1 || years > 100 {
		writeError(w, r, badRequestf("years must be between 1 and 100, got %d", years))
		return
	}
	if rate < 0 || principal < 0 || contribution < 0 {
		writeError(w, r, badRequestf("principal, contribution and rate must not be negative"))
		return
	}

	points := projection.CompoundInterest(
		core.Money{Cents: principal},
		core.Money{Cents: contribution},
		rate, years)

	writeJSON(w, http.StatusOK, compoundProjectionResponse{
		PrincipalCents:           principal,
		MonthlyContributionCents: contribution,
		AnnualRate:               rate,
		Years:                    years,
		YearPoints:               points,
	})
}

func (s *Server) handleRetirementProjection(w http.ResponseWriter, r *http.Request) {
	savings, err := queryInt64(r, "currentSavingsCents", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contribution, err := queryInt64(r, "annualContributionCents", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	nominalRate, err := queryFloat(r, "annualRate", 7)
	if err != nil {
		writeError(w, r, err)
		return
	}
	inflationRate, err := queryFloat(r, "inflationRate", 2)
	if err != nil {
		writeError(w, r, err)
		return
	}
	years, err := queryInt(r, "years", 30)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if years < 1 || years > 100 {
		writeError(w, r, badRequestf("years must be between 1 and 100, got %d", years))
		return
	}
	if nominalRate < 0 || inflationRate < 0 || savings < 0 || contribution < 0 {
		writeError(w, r, badRequestf("savings, contribution and rates must not be negative"))
		return
	}

	result := projection.RetirementFutureValue(
		core.Money{Cents: savings},
		core.Money{Cents: contribution},
		nominalRate, inflationRate, years)

	writeJSON(w, http.StatusOK, result)
}
