package authn

import "net/http"

// Cookie describes how the session credential is attached to clients.
type Cookie struct {
	Name     string
	Path     string
	HTTPOnly bool
	Secure   bool
}

// Write attaches a session credential to the response. The credential
// itself carries no expiry, so neither does the cookie.
func (c Cookie) Write(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    credential,
		Path:     c.Path,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     c.Path,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Read returns the session credential carried by the request, or an
// empty string when the cookie is absent.
func (c Cookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
