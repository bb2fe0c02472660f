// Package schemas embeds the JSON Schemas describing the external matching service responses.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	SearchResponse = "search_response.schema.json"
	MatchResponse  = "match_response.schema.json"
)
