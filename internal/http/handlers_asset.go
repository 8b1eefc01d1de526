package http

import (
	"net/http"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"
)

type createAssetRequest struct {
	CategoryID        string `json:"categoryId"`
	Name              string `json:"name"`
	CurrentValueCents *int64 `json:"currentValueCents,omitempty"`
	CurrentValue      string `json:"currentValue,omitempty"`
}

type updateAssetRequest struct {
	CategoryID        *string `json:"categoryId,omitempty"`
	Name              *string `json:"name,omitempty"`
	CurrentValueCents *int64  `json:"currentValueCents,omitempty"`
	CurrentValue      string  `json:"currentValue,omitempty"`
}

type snapshotResponse struct {
	Date       string `json:"date"`
	ValueCents int64  `json:"valueCents"`
}

type assetResponse struct {
	ID                string             `json:"id"`
	CategoryID        string             `json:"categoryId"`
	Name              string             `json:"name"`
	CurrentValueCents int64              `json:"currentValueCents"`
	ValueHistory      []snapshotResponse `json:"valueHistory"`
}

func toAssetResponse(a core.Asset) assetResponse {
	resp := assetResponse{
		ID:                a.ID,
		CategoryID:        a.CategoryID,
		Name:              a.Name,
		CurrentValueCents: a.CurrentValue.Cents,
		ValueHistory:      make([]snapshotResponse, 0, len(a.ValueHistory)),
	}
	for _, snap := range a.ValueHistory {
		resp.ValueHistory = append(resp.ValueHistory, snapshotResponse{
			Date:       snap.Date.UTC().Format(time.RFC3339),
			ValueCents: snap.Value.Cents,
		})
	}
	return resp
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cents, err := amountCents(req.CurrentValueCents, req.CurrentValue)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.assets.Create(r.Context(), core.Asset{
		OwnerID:      owner,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		CurrentValue: core.Money{Cents: cents},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssetResponse(a))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	assets, err := s.assets.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := s.assets.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(a))
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	upd := services.AssetUpdate{
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		CurrentValueCents: req.CurrentValueCents,
	}
	if req.CurrentValue != "" {
		if req.CurrentValueCents != nil {
			writeError(w, r, badRequestf("provide either currentValueCents or currentValue, not both"))
			return
		}
		cents, err := core.ParseDecimalToCents(req.CurrentValue)
		if err != nil {
			writeError(w, r, badRequestf("invalid currentValue %q: %v", req.CurrentValue, err))
			return
		}
		upd.CurrentValueCents = &cents
	}

	a, err := s.assets.Update(r.Context(), owner, r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(a))
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.assets.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
