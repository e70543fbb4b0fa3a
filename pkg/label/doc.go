// Package label parses Traefik container label keys into structured paths.
//
// A label key like "traefik.http.routers.web.rule" is decomposed into ordered
// segments addressing a position in a configuration tree. A trailing bracket
// group on a segment ("customresponseheaders[0]") denotes a list index.
//
// Keys outside the recognized "traefik." namespace are reported with ErrSkip
// so callers can silently ignore them; keys inside the namespace with
// malformed segment syntax produce a *SyntaxError.
package label
