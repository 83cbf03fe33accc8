package api

import (
	"net/http"

	"github.com/iancoleman/orderedmap"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/server/result"
)

// HTTPGetCommands returns a HandlerFunc that lists every command the server
// accepts. The response maps each registry label to an object of canonical
// name to aliases, with names in alphabetical order.
func (api API) HTTPGetCommands() http.HandlerFunc {
	return api.Endpoint(api.epGetCommands)
}

func (api API) epGetCommands(req *http.Request) result.Result {
	resp := orderedmap.New()
	for _, reg := range []*command.Registry{command.SystemCommands, command.EntityCommands} {
		resp.Set(reg.Label(), catalog(reg))
	}

	return result.OK(resp, "client got command catalog")
}

func catalog(reg *command.Registry) *orderedmap.OrderedMap {
	cat := orderedmap.New()
	for _, name := range reg.Names() {
		cat.Set(string(name), reg.Aliases(name))
	}
	return cat
}
