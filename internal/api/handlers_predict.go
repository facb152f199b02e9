// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/recommend/algorithms"
	"github.com/tomtom215/cfpredict/internal/validation"
)

// Prediction handles GET /api/v1/predictions?user_id=&movie_id=
// Returns the blended prediction for one (user, movie) pair.
func (h *Handler) Prediction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Ratings store not loaded")
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		rw.BadRequest("user_id must be an integer")
		return
	}
	movieID, err := strconv.Atoi(r.URL.Query().Get("movie_id"))
	if err != nil {
		rw.BadRequest("movie_id must be an integer")
		return
	}

	req := PredictionRequest{UserID: userID, MovieID: movieID}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	pred, err := h.engine.Predict(ctx, req.Query())
	if err != nil {
		respondPredictError(rw, r, err)
		return
	}

	rw.Success(newPredictionResponse(pred))
}

// PredictionBatch handles POST /api/v1/predictions/batch
// Predicts up to MaxBatchQueries pairs; results keep request order.
func (h *Handler) PredictionBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Ratings store not loaded")
		return
	}

	var req BatchPredictionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	preds, err := h.engine.PredictAll(ctx, req.Queries)
	if err != nil {
		respondPredictError(rw, r, err)
		return
	}

	resp := BatchPredictionResponse{Predictions: make([]PredictionResponse, len(preds))}
	for i := range preds {
		resp.Predictions[i] = newPredictionResponse(preds[i])
		if !resp.Predictions[i].Defined {
			resp.Undefined++
		}
	}

	logging.Ctx(r.Context()).Debug().
		Int("queries", len(preds)).
		Int("undefined", resp.Undefined).
		Dur("duration", time.Since(start)).
		Msg("Batch prediction served")

	rw.SuccessWithMeta(resp, &APIMeta{Count: len(resp.Predictions)})
}

// Similarity handles GET /api/v1/similarity/{axis}/{a}/{b}
// Returns the cosine similarity of two user or two movie profiles.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Ratings store not loaded")
		return
	}

	a, errA := strconv.Atoi(chi.URLParam(r, "a"))
	b, errB := strconv.Atoi(chi.URLParam(r, "b"))
	if errA != nil || errB != nil {
		rw.BadRequest("Profile IDs must be integers")
		return
	}

	req := SimilarityRequest{Axis: chi.URLParam(r, "axis"), A: a, B: b}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}

	store := h.engine.Store()
	pa := store.Profile(req.axis(), req.A)
	pb := store.Profile(req.axis(), req.B)

	rw.Success(SimilarityResponse{
		Axis:       req.Axis,
		A:          req.A,
		B:          req.B,
		Similarity: algorithms.CosineSimilarity(pa, pb),
		ARatings:   pa.Len(),
		BRatings:   pb.Len(),
	})
}

// Stats handles GET /api/v1/stats
// Returns store dimensions and prediction cache counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Ratings store not loaded")
		return
	}

	resp := StatsResponse{
		Store:         h.engine.Stats(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.engine.CacheEnabled() {
		hits, misses, size := h.engine.CacheStats()
		resp.Cache = &CacheStatsResponse{Hits: hits, Misses: misses, Size: size}
	}

	rw.Success(resp)
}
