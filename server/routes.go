package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tracon/scopecmd/server/api"
	"github.com/tracon/scopecmd/server/middle"
	"github.com/tracon/scopecmd/server/result"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

func newRouter(a api.API, reqAuth middle.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Mount(api.PathPrefix, newAPIRouter(a, reqAuth))

	return r
}

func newAPIRouter(a api.API, reqAuth middle.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/info", a.HTTPGetInfo())
	r.HandleFunc("/info/", RedirectNoTrailingSlash)
	r.Get("/commands", a.HTTPGetCommands())
	r.HandleFunc("/commands/", RedirectNoTrailingSlash)
	r.Mount("/sessions", newSessionsRouter(a, reqAuth))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		result.NotFound().WriteResponse(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(a.UnauthDelay)
		result.MethodNotAllowed(req).WriteResponse(w)
	})

	return r
}

func newSessionsRouter(a api.API, reqAuth middle.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/", a.HTTPCreateSession())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Use(reqAuth)

		r.Get("/", a.HTTPGetSession())
		r.Delete("/", a.HTTPDeleteSession())
		r.Post("/commands", a.HTTPExecuteLine())
		r.Get("/commands", a.HTTPGetHistory())
	})

	return r
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL as the
// request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	result.Redirection(redirPath).WriteResponse(w)
}
