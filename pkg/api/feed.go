package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// Home feed sizes per content type
const (
	feedSermons     = 4
	feedEvents      = 3
	feedBlogPosts   = 3
	feedTestimonies = 2
)

// FeedResponse is the public home page read-out, each list newest first
type FeedResponse struct {
	Sermons     []domain.Record `json:"sermons"`
	Events      []domain.Record `json:"events"`
	Blog        []domain.Record `json:"blog"`
	Testimonies []domain.Record `json:"testimonies"`
}

// HandleFeed handles GET requests for the home feed
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleFeed called")

	var (
		feed FeedResponse
		err  error
	)
	sections := []struct {
		name string
		n    int
		dst  *[]domain.Record
	}{
		{"sermons", feedSermons, &feed.Sermons},
		{"events", feedEvents, &feed.Events},
		{"blog", feedBlogPosts, &feed.Blog},
		{"testimonies", feedTestimonies, &feed.Testimonies},
	}

	for _, section := range sections {
		*section.dst, err = h.store.Recent(section.name, section.n)
		if err != nil {
			log.Printf("ERROR: Reading '%s' for the feed failed: %v", section.name, err)
			WriteJSONError(w, http.StatusInternalServerError, readFailedMessage)
			return
		}
	}

	WriteJSON(w, http.StatusOK, feed)
}
