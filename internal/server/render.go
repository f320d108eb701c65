package server

import "net/http"

// Page is embedded in every page-data struct so renderPage can attach
// the pending flash message.
type Page struct {
	Title string
	Flash Flash
}

func (p *Page) setFlash(f Flash) { p.Flash = f }

type flashSetter interface {
	setFlash(Flash)
}

func (s *Service) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	if setter, ok := data.(flashSetter); ok {
		setter.setFlash(s.popFlash(w, r))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.WithError(err).WithField("template", name).Error("failed to render page")
		s.internalServerError(w)
	}
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
