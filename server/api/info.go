package api

import (
	"net/http"

	"github.com/tracon/scopecmd/internal/version"
	"github.com/tracon/scopecmd/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.ScopeCmd = version.Current

	return result.OK(resp, "client got API info")
}
