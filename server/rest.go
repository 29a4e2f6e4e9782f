package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/pipeline"
)

const (
	defaultArticlesLimit  = 50
	maxArticlesLimit      = 200
	defaultBriefingsLimit = 10
	maxBriefingsLimit     = 50
)

// collectRequest is the body of a manual collection trigger, all fields optional
type collectRequest struct {
	Region        string `json:"region"`
	IncludeSearch *bool  `json:"includeSearch"`
}

type clusterRequest struct {
	SectorID int64 `json:"sectorId"`
}

type briefingRequest struct {
	Slot string `json:"slot"`
}

type statusResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Time      time.Time       `json:"time"`
	Pipeline  pipeline.Status `json:"pipeline"`
	Listeners int             `json:"listeners"`
}

// statusHandler returns server and pipeline status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:   "ok",
		Version:  s.params.Version,
		Time:     time.Now().UTC(),
		Pipeline: s.pipeline.Status(),
	}
	if s.events != nil {
		resp.Listeners = s.events.ListenerCount()
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// collectHandler runs a collection cycle, a cycle already in progress gives a skipped result.
// Triggers run to completion even if the client disconnects.
func (s *Server) collectHandler(w http.ResponseWriter, r *http.Request) {
	var req collectRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	region, ok := domain.ParseRegion(req.Region)
	if !ok {
		renderError(w, r, fmt.Errorf("invalid region %q", req.Region), http.StatusBadRequest)
		return
	}
	includeSearch := req.IncludeSearch == nil || *req.IncludeSearch

	res, err := s.pipeline.RunCycle(context.WithoutCancel(r.Context()), region, includeSearch)
	if err != nil {
		log.Printf("[ERROR] manual collection failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// classifyHandler runs the escalation pass
func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.pipeline.Reclassify(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Printf("[ERROR] manual escalation failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// clusterHandler runs the clustering pass, optionally for one sector
func (s *Server) clusterHandler(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.SectorID < 0 {
		renderError(w, r, errors.New("invalid sector id"), http.StatusBadRequest)
		return
	}

	res, err := s.pipeline.Cluster(context.WithoutCancel(r.Context()), req.SectorID)
	if err != nil {
		log.Printf("[ERROR] manual clustering failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// generateBriefingsHandler runs the briefing pass, slot defaults to MORNING
func (s *Server) generateBriefingsHandler(w http.ResponseWriter, r *http.Request) {
	var req briefingRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	slot := domain.SlotMorning
	if domain.BriefingSlot(req.Slot) == domain.SlotNight {
		slot = domain.SlotNight
	}

	res, err := s.pipeline.Briefings(context.WithoutCancel(r.Context()), slot)
	if err != nil {
		log.Printf("[ERROR] manual briefing generation failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// briefingsHandler lists recent briefings
func (s *Server) briefingsHandler(w http.ResponseWriter, r *http.Request) {
	sectorID, err := queryInt64(r, "sectorId")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	limit := clampLimit(r.URL.Query().Get("limit"), defaultBriefingsLimit, maxBriefingsLimit)

	briefings, err := s.store.FindBriefings(r.Context(), sectorID, limit)
	if err != nil {
		log.Printf("[ERROR] failed to get briefings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	labels, err := s.sectorLabels(r)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]briefingView, 0, len(briefings))
	for _, b := range briefings {
		res = append(res, toBriefingView(b, labels))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// sectorsHandler lists sectors with their sources
func (s *Server) sectorsHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	sectors, err := s.store.FindSectors(r.Context(), activeOnly)
	if err != nil {
		log.Printf("[ERROR] failed to get sectors: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	res := make([]sectorView, 0, len(sectors))
	for _, sec := range sectors {
		res = append(res, toSectorView(sec))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// articlesHandler lists stored articles, newest first. q searches titles and summaries,
// from and to bound the collection time and take RFC3339 or a YYYY-MM-DD date, to date inclusive.
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sectorID, err := queryInt64(r, "sectorId")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	offset, err := queryInt64(r, "offset")
	if err != nil || offset < 0 {
		renderError(w, r, errors.New("invalid offset"), http.StatusBadRequest)
		return
	}
	var region domain.Region
	if v := q.Get("region"); v != "" {
		var ok bool
		if region, ok = domain.ParseRegion(v); !ok {
			renderError(w, r, fmt.Errorf("invalid region %q", v), http.StatusBadRequest)
			return
		}
	}
	from, err := s.parseTimeParam(q.Get("from"), false)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid from: %w", err), http.StatusBadRequest)
		return
	}
	to, err := s.parseTimeParam(q.Get("to"), true)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid to: %w", err), http.StatusBadRequest)
		return
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		renderError(w, r, errors.New("from must be before to"), http.StatusBadRequest)
		return
	}
	limit := clampLimit(q.Get("limit"), defaultArticlesLimit, maxArticlesLimit)

	filter := domain.ArticleFilter{
		SectorID: sectorID,
		Region:   region,
		Query:    strings.TrimSpace(q.Get("q")),
		Until:    to,
		Limit:    limit,
		Offset:   int(offset),
	}
	if !from.IsZero() {
		filter.Since = from.Add(-time.Nanosecond) // Since is exclusive, from is not
	}
	articles, err := s.store.FindArticles(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	labels, err := s.sectorLabels(r)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, toArticleView(a, labels))
	}
	w.Header().Set("Cache-Control", "public, max-age=30")
	renderJSON(w, r, http.StatusOK, articlesResponse{Articles: views, Query: filter.Query, Limit: limit, Offset: int(offset)})
}

// parseTimeParam parses an RFC3339 time or a date in the server time zone. A date used as an
// upper bound means the end of that day.
func (s *Server) parseTimeParam(v string, upper bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, s.params.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", v)
	}
	if upper {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

// sectorLabels maps sector ids to labels for response enrichment
func (s *Server) sectorLabels(r *http.Request) (map[int64]string, error) {
	sectors, err := s.store.FindSectors(r.Context(), false)
	if err != nil {
		return nil, fmt.Errorf("find sectors: %w", err)
	}
	res := make(map[int64]string, len(sectors))
	for _, sec := range sectors {
		res[sec.ID] = sec.Label
	}
	return res, nil
}

// decodeOptionalJSON decodes the request body into v, an empty body keeps v unchanged
func decodeOptionalJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid request body: %w", err)
}

func queryInt64(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// clampLimit parses a limit, falling back to def and capping at maxVal
func clampLimit(v string, def, maxVal int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxVal)
}
