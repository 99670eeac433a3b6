// Package web serves the TravelSaathi front end: the search form, the
// rendered itinerary for the active route, and the informational overlays.
// Pages are rendered server-side from the per-session shell state.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/cities"
	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/shell"
	"github.com/travelsaathi/travelsaathi/internal/view"
)

// Version is shown in the support overlay footer.
const Version = "1.0.3"

// sessionCookie names the cookie carrying the shell session id.
const sessionCookie = "ts_session"

//go:embed templates
var templateFS embed.FS

// Handler serves the server-rendered front end.
type Handler struct {
	sessions *shell.Manager
	planner  shell.Planner
	locator  geolocate.Locator
	cities   cities.Source
	log      zerolog.Logger
	tmpl     *template.Template
}

// Config holds the front end dependencies. Locator may be nil.
type Config struct {
	Sessions *shell.Manager
	Planner  shell.Planner
	Locator  geolocate.Locator
	Cities   cities.Source
	Logger   zerolog.Logger
}

// NewHandler creates the front end handler, parsing the embedded templates.
func NewHandler(cfg Config) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &Handler{
		sessions: cfg.Sessions,
		planner:  cfg.Planner,
		locator:  cfg.Locator,
		cities:   cfg.Cities,
		log:      cfg.Logger,
		tmpl:     tmpl,
	}, nil
}

// Routes returns the front end router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/search", h.search)
	r.Post("/swap", h.swap)
	r.Post("/routes/select", h.selectRoute)
	r.Post("/error/dismiss", h.dismiss)
	r.Post("/reset", h.reset)
	r.Post("/overlays/{overlay}/open", h.openOverlay)
	r.Post("/overlays/{overlay}/close", h.closeOverlay)
	return r
}

// page is the template data for the index page.
type page struct {
	Version     string
	Form        shell.Form
	Suggestions []string
	Loading     bool
	Error       string
	Trip        *view.Trip
	Overlays    map[shell.Overlay]bool

	HelpOverlay    shell.Overlay
	SupportOverlay shell.Overlay
	AboutOverlay   shell.Overlay
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *shell.Session {
	var id string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		id = cookie.Value
	}

	sess := h.sessions.GetOrCreate(id)
	if sess.ID() != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	snap := sess.Snapshot()

	suggestions, err := h.cities.Suggest(r.Context(), "")
	if err != nil {
		h.log.Error().Err(err).Msg("loading city suggestions")
		suggestions = nil
	}

	data := page{
		Version: Version,
		Form: shell.Form{
			// Prefilled by the swap action.
			Origin:      r.URL.Query().Get("from"),
			Destination: r.URL.Query().Get("to"),
		},
		Suggestions:    suggestions,
		Loading:        snap.State == shell.StateLoading,
		Error:          snap.ErrorMessage,
		Overlays:       snap.Overlays,
		HelpOverlay:    shell.OverlayHelp,
		SupportOverlay: shell.OverlaySupport,
		AboutOverlay:   shell.OverlayAbout,
	}
	if snap.State == shell.StateSuccess && snap.Result != nil {
		trip := view.BuildTrip(snap.Result, snap.ActiveRouteID)
		data.Trip = &trip
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		h.log.Error().Err(err).Msg("rendering index page")
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := shell.Form{
		Origin:             r.PostFormValue("origin"),
		Destination:        r.PostFormValue("destination"),
		UseCurrentLocation: r.PostFormValue("useCurrentLocation") == "on",
	}

	seq := sess.Begin()
	resp, err := form.Submit(r.Context(), h.planner, h.locator, r.RemoteAddr, h.log)
	if err != nil {
		message := "We couldn't map this route. Please check if the locations are in India and try again."
		if !planner.IsGenerationError(err) {
			h.log.Error().Err(err).Msg("trip search failed")
		}
		sess.Reject(seq, message)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.Resolve(seq, resp)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// swap re-renders the form with origin and destination exchanged. The values
// travel through the redirect; no session state is involved.
func (h *Handler) swap(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := shell.Form{
		Origin:      r.PostFormValue("origin"),
		Destination: r.PostFormValue("destination"),
	}
	form.Swap()

	target := "/?from=" + template.URLQueryEscaper(form.Origin) + "&to=" + template.URLQueryEscaper(form.Destination)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) selectRoute(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if err := r.ParseForm(); err == nil {
		sess.SelectRoute(r.PostFormValue("route"))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Dismiss()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) openOverlay(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).OpenOverlay(shell.Overlay(chi.URLParam(r, "overlay")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) closeOverlay(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).CloseOverlay(shell.Overlay(chi.URLParam(r, "overlay")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
