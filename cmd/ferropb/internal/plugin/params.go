package plugin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

var schemaDecoder = schema.NewDecoder()

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// Params are the generation options recognized in the protoc parameter
// string.
type Params struct {
	Kernel       string `schema:"kernel"`
	CrateMap     string `schema:"crate_map"`
	DefaultCrate string `schema:"default_crate"`
	ViewOnly     bool   `schema:"view_only"`
	Manifest     bool   `schema:"manifest"`
}

// parseParams decodes a protoc parameter string. A bare key with no
// value is an enabled flag: "view_only" means "view_only=true". Unknown
// keys are ignored so shared option strings can carry other plugins'
// settings.
func parseParams(parameter string) (Params, error) {
	var p Params
	if parameter == "" {
		return p, nil
	}

	values := url.Values{}
	for _, pair := range strings.Split(parameter, ",") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			value = "true"
		}
		values.Add(key, value)
	}

	if err := schemaDecoder.Decode(&p, values); err != nil {
		return Params{}, fmt.Errorf("invalid parameter string %q: %w", parameter, err)
	}
	return p, nil
}
