package server

import "net/http"

const flashCookieName = "maslow_flash"

type Flash struct {
	Notice string
	Error  string
}

// setFlash signs a one-shot message into a cookie; it survives exactly
// one redirect and is cleared on the next render.
func (s *Service) setFlash(w http.ResponseWriter, flash Flash) {
	encoded, err := s.cookie.Encode(flashCookieName, flash)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode flash cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie. A cookie that fails
// signature verification is dropped silently; it only carries a display
// message.
func (s *Service) popFlash(w http.ResponseWriter, r *http.Request) Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return Flash{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var flash Flash
	if err := s.cookie.Decode(flashCookieName, cookie.Value, &flash); err != nil {
		return Flash{}
	}
	return flash
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	s.setFlash(w, Flash{Notice: notice})
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	s.setFlash(w, Flash{Error: msg})
	http.Redirect(w, r, target, http.StatusSeeOther)
}
