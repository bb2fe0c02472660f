package settings

import (
	"net/http"
	"time"
)

// DefaultCookieMaxAge keeps preferences for a year.
const DefaultCookieMaxAge = 365 * 24 * time.Hour

// CookieStore persists settings in browser cookies, one cookie per key.
// It is bound to a single request/response pair.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration
	secure bool
	// written values shadow request cookies for later reads in the same request
	written map[string]string
}

// CookieOptions configures cookies written by a CookieStore.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// NewCookieStore binds a store to the request and response.
func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultCookieMaxAge
	}
	return &CookieStore{
		r:       r,
		w:       w,
		maxAge:  opts.MaxAge,
		secure:  opts.Secure,
		written: make(map[string]string),
	}
}

// Get implements Store.
func (c *CookieStore) Get(key string) (string, bool) {
	if v, ok := c.written[key]; ok {
		return v, true
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// Set implements Store.
func (c *CookieStore) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.written[key] = value
	return nil
}
