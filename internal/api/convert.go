package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/akobaz/libcoocvt/internal/body"
	"github.com/akobaz/libcoocvt/internal/convert"
	"github.com/akobaz/libcoocvt/internal/metrics"
	"github.com/akobaz/libcoocvt/internal/units"
)

// maxRequestBytes caps the /api/v1/convert request body. Populations are a
// few hundred bytes per body, so this comfortably covers MaxBodies-sized
// requests while bounding memory per request.
const maxRequestBytes = 16 << 20

type cartesianJSON struct {
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

type keplerianJSON struct {
	SMA  float64 `json:"a"`
	Ecc  float64 `json:"e"`
	Inc  float64 `json:"i"`
	Peri float64 `json:"peri"`
	Node float64 `json:"node"`
	Mean float64 `json:"mean"`
}

type bodyJSON struct {
	Mass         float64        `json:"mass"`
	Barycentric  *cartesianJSON `json:"barycentric,omitempty"`
	Heliocentric *cartesianJSON `json:"heliocentric,omitempty"`
	Keplerian    *keplerianJSON `json:"keplerian,omitempty"`
}

type convertRequest struct {
	Mode    string     `json:"mode"`
	Central int        `json:"central"`
	Degrees bool       `json:"degrees"`
	Bodies  []bodyJSON `json:"bodies"`
}

type convertResponse struct {
	Mode    string     `json:"mode"`
	Central int        `json:"central"`
	Failed  []int      `json:"failed,omitempty"`
	Bodies  []bodyJSON `json:"bodies"`
}

func writeError(w http.ResponseWriter, status int, fields map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(fields)
}

// convertHandler decodes a population, runs the requested conversion through
// the worker pool, and returns the population with the target representation
// populated. Per-body domain failures do not fail the request: the affected
// indices are reported in the "failed" field while every other body carries
// its converted state.
func convertHandler(logger *slog.Logger, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

		var req convertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON: " + err.Error()})
			return
		}

		mode, err := convert.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		if len(req.Bodies) == 0 {
			writeError(w, http.StatusBadRequest, map[string]any{"error": "empty population"})
			return
		}
		if len(req.Bodies) > cfg.MaxBodies {
			writeError(w, http.StatusBadRequest, map[string]any{
				"error":      "population exceeds the per-request budget",
				"max_bodies": cfg.MaxBodies,
			})
			return
		}
		if req.Central < 0 || req.Central >= len(req.Bodies) {
			writeError(w, http.StatusBadRequest, map[string]any{"error": "central index out of bounds"})
			return
		}

		pop := make([]body.Body, len(req.Bodies))
		for i := range req.Bodies {
			fromJSON(&pop[i], &req.Bodies[i], req.Degrees)
		}

		pool := convert.NewWorkerPool(cfg.Workers, logger)
		start := time.Now()
		err = pool.ConvertBatch(r.Context(), pop, req.Central, mode)
		metrics.RecordConversion(mode.String(), time.Since(start), len(pop), err != nil)

		resp := convertResponse{Mode: mode.String(), Central: req.Central}

		if err != nil {
			var be *convert.BodyError
			switch {
			case errors.As(err, &be):
				// Partial failure: report the indices, keep the rest.
				resp.Failed = be.Bodies
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				writeError(w, http.StatusServiceUnavailable, map[string]any{"error": "request cancelled"})
				return
			default:
				// Whole-call domain failure, e.g. zero total mass.
				writeError(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
				return
			}
		}

		resp.Bodies = make([]bodyJSON, len(pop))
		for i := range pop {
			toJSON(&resp.Bodies[i], &pop[i], mode, req.Degrees)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func fromJSON(dst *body.Body, src *bodyJSON, degrees bool) {
	dst.Mass = src.Mass
	if c := src.Barycentric; c != nil {
		dst.Bary = toCartesian(c)
	}
	if c := src.Heliocentric; c != nil {
		dst.Helio = toCartesian(c)
	}
	if k := src.Keplerian; k != nil {
		ang := 1.0
		if degrees {
			ang = units.DegToRad
		}
		dst.Kep = body.Keplerian{
			SMA:  k.SMA,
			Ecc:  k.Ecc,
			Inc:  k.Inc * ang,
			Peri: k.Peri * ang,
			Node: k.Node * ang,
			Mean: k.Mean * ang,
		}
	}
}

// toJSON fills the source and target representations of the conversion; the
// other fields stay omitted.
func toJSON(dst *bodyJSON, src *body.Body, mode convert.Mode, degrees bool) {
	dst.Mass = src.Mass

	switch mode {
	case convert.ModeBaryToHelio:
		dst.Barycentric = fromCartesian(src.Bary)
		dst.Heliocentric = fromCartesian(src.Helio)
	case convert.ModeHelioToBary:
		dst.Heliocentric = fromCartesian(src.Helio)
		dst.Barycentric = fromCartesian(src.Bary)
	case convert.ModeHelioToKepler, convert.ModeKeplerToHelio:
		ang := 1.0
		if degrees {
			ang = units.RadToDeg
		}
		dst.Heliocentric = fromCartesian(src.Helio)
		dst.Keplerian = &keplerianJSON{
			SMA:  src.Kep.SMA,
			Ecc:  src.Kep.Ecc,
			Inc:  src.Kep.Inc * ang,
			Peri: src.Kep.Peri * ang,
			Node: src.Kep.Node * ang,
			Mean: src.Kep.Mean * ang,
		}
	}
}

func toCartesian(c *cartesianJSON) body.Cartesian {
	var out body.Cartesian
	out.Pos.X, out.Pos.Y, out.Pos.Z = c.Position[0], c.Position[1], c.Position[2]
	out.Vel.X, out.Vel.Y, out.Vel.Z = c.Velocity[0], c.Velocity[1], c.Velocity[2]
	return out
}

func fromCartesian(c body.Cartesian) *cartesianJSON {
	return &cartesianJSON{
		Position: [3]float64{c.Pos.X, c.Pos.Y, c.Pos.Z},
		Velocity: [3]float64{c.Vel.X, c.Vel.Y, c.Vel.Z},
	}
}
