package server

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

const defaultRSSLimit = 50

// rssHandler serves RSS of recent articles, /rss covers all sectors and /rss/{sector} one sector by label
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := domain.ArticleFilter{Limit: defaultRSSLimit}
	var sector *domain.Sector
	if label := r.PathValue("sector"); label != "" {
		var err error
		sector, err = s.store.GetSectorByLabel(ctx, label)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Sector not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("[ERROR] failed to get sector %q for RSS: %v", label, err)
			http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
			return
		}
		filter.SectorID = sector.ID
	}

	articles, err := s.store.FindArticles(ctx, filter)
	if err != nil {
		log.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	labels, err := s.sectorLabels(r)
	if err != nil {
		log.Printf("[ERROR] failed to get sectors for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.feedGen.GenerateRSS(sector, articles, labels)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves the list of active sector feeds as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	sectors, err := s.store.FindSectors(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to get sectors for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}
	opml, err := s.feedGen.GenerateOPML(sectors)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
