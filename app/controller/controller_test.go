package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsmart/catalog"
	"shopsmart/catalog/catalogtest"
	"shopsmart/models"
	"shopsmart/service"
	"shopsmart/session"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{`3`, 3, false},
		{`"4"`, 4, false},
		{`"abc"`, 1, false},
		{`2.7`, 2, false},
		{`42`, 10, false},
		{`1e20`, 10, false},
		{`-1e20`, 1, false},
		{`99999999999999999999`, 10, false},
		{`"99999999999999999999"`, 10, false},
		{`"12.5"`, 10, false},
		{`12.5`, 10, false},
		{`true`, 0, true},
		{``, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseQuantity(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionRegistry_ReusesCookieSession(t *testing.T) {
	reg := NewSessionRegistry(catalogtest.Example(), nil, nil)

	rec := httptest.NewRecorder()
	var first string
	reg.Do(rec, httptest.NewRequest(http.MethodGet, "/", nil), func(s *session.Session) {
		first = s.ID()
		s.AddToCart("A")
	})
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, first, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	reg.Do(rec, req, func(s *session.Session) {
		assert.Equal(t, first, s.ID())
		assert.Equal(t, 1, s.Summary().TotalItemCount)
	})
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, reg.Len())
}

func TestSessionRegistry_UnknownCookieStartsNewSession(t *testing.T) {
	reg := NewSessionRegistry(catalogtest.Example(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"})

	reg.Do(httptest.NewRecorder(), req, func(s *session.Session) {
		assert.NotEqual(t, "expired", s.ID())
	})
	assert.Equal(t, 1, reg.Len())
}

func TestSessionRegistry_InitialTheme(t *testing.T) {
	reg := NewSessionRegistry(catalogtest.Example(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PrefersColorSchemeHeader, "dark")
	reg.Do(httptest.NewRecorder(), req, func(s *session.Session) {
		assert.Equal(t, models.ThemeDark, s.Theme().Current())
		assert.False(t, s.Theme().HasExplicitChoice())
	})

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PrefersColorSchemeHeader, "dark")
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: "light"})
	reg.Do(httptest.NewRecorder(), req, func(s *session.Session) {
		assert.Equal(t, models.ThemeLight, s.Theme().Current())
	})
}

func TestSessionRegistry_SetCatalogOnlyAffectsNewSessions(t *testing.T) {
	reg := NewSessionRegistry(catalogtest.Example(), nil, nil)

	rec := httptest.NewRecorder()
	reg.Do(rec, httptest.NewRequest(http.MethodGet, "/", nil), func(s *session.Session) {})
	old := rec.Result().Cookies()[0]

	reg.SetCatalog(catalogtest.Mixed())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(old)
	reg.Do(httptest.NewRecorder(), req, func(s *session.Session) {
		assert.Equal(t, 2, s.Catalog().Len())
	})
	reg.Do(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), func(s *session.Session) {
		assert.Equal(t, 6, s.Catalog().Len())
	})
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedRegistry(c *catalog.Catalog) (*SessionRegistry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := NewSessionRegistry(c, nil, nil)
	reg.now = clock.now
	reg.lastSweep = clock.now()
	return reg, clock
}

func visit(t *testing.T, reg *SessionRegistry, cookie *http.Cookie) (string, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	var id string
	reg.Do(rec, req, func(s *session.Session) { id = s.ID() })
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		cookie = cookies[0]
	}
	return id, cookie
}

func TestSessionRegistry_IdleSessionExpires(t *testing.T) {
	reg, clock := newClockedRegistry(catalogtest.Example())

	first, cookie := visit(t, reg, nil)
	clock.advance(20 * time.Minute)
	id, _ := visit(t, reg, cookie)
	assert.Equal(t, first, id)

	clock.advance(20 * time.Minute)
	id, _ = visit(t, reg, cookie)
	assert.Equal(t, first, id, "activity refreshes the idle timer")

	clock.advance(DefaultIdleTimeout + time.Second)
	id, fresh := visit(t, reg, cookie)
	assert.NotEqual(t, first, id)
	assert.Equal(t, id, fresh.Value)
	assert.Equal(t, 1, reg.Len())
}

func TestSessionRegistry_SweepDropsOnlyIdleSessions(t *testing.T) {
	reg, clock := newClockedRegistry(catalogtest.Example())
	reg.SetIdleTimeout(10 * time.Minute)

	_, idle := visit(t, reg, nil)
	active, cookie := visit(t, reg, nil)
	for i := 0; i < 3; i++ {
		clock.advance(3 * time.Minute)
		visit(t, reg, cookie)
	}
	clock.advance(2 * time.Minute)
	require.Equal(t, 2, reg.Len())

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())

	id, _ := visit(t, reg, cookie)
	assert.Equal(t, active, id)
	id, _ = visit(t, reg, idle)
	assert.NotEqual(t, idle.Value, id)
}

func TestSessionRegistry_ManyCookielessVisitsStayBounded(t *testing.T) {
	reg, clock := newClockedRegistry(catalogtest.Example())
	reg.SetMaxSessions(3)

	_, oldest := visit(t, reg, nil)
	for i := 0; i < 50; i++ {
		clock.advance(time.Second)
		visit(t, reg, nil)
	}
	assert.Equal(t, 3, reg.Len())

	id, _ := visit(t, reg, oldest)
	assert.NotEqual(t, oldest.Value, id)
}

func TestSessionRegistry_OpportunisticSweep(t *testing.T) {
	reg, clock := newClockedRegistry(catalogtest.Example())
	for i := 0; i < 5; i++ {
		visit(t, reg, nil)
	}
	clock.advance(DefaultIdleTimeout + time.Minute)

	visit(t, reg, nil)
	assert.Equal(t, 1, reg.Len())
}

func TestMedia_ResolvesAgainstSessionCatalog(t *testing.T) {
	reg := NewSessionRegistry(catalogtest.Example(), nil, nil)
	ctrl := NewStorefrontController(reg, nil, service.NewMediaService("", nil), nil, nil)
	r := chi.NewRouter()
	r.Get("/media/{productID}.png", ctrl.Media)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/A.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	reg.SetCatalog(catalogtest.Mixed())

	req := httptest.NewRequest(http.MethodGet, "/media/A.png", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/A.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/hoodie.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
