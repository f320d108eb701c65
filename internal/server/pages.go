package server

import "net/http"

type NotFoundPageData struct {
	Page
	ContentID string
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/needs", http.StatusSeeOther)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) renderNotFound(w http.ResponseWriter, r *http.Request, contentID string) {
	w.WriteHeader(http.StatusNotFound)
	data := &NotFoundPageData{
		Page:      Page{Title: "Need not found"},
		ContentID: contentID,
	}
	if err := s.templates.ExecuteTemplate(w, "page.notfound", data); err != nil {
		s.logger.WithError(err).Error("failed to render not found page")
	}
}
