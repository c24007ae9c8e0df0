package httpapi

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/exercisetracker/internal/common"
)

const maxBodyBytes = 1 << 20

// readInput returns the request fields from a urlencoded form or a JSON
// object body. JSON scalars are converted to their textual form so both
// encodings go through the same parsing.
func readInput(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, common.NewValidationError("body", "malformed form body")
		}
		return r.Form, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, common.NewValidationError("body", "malformed JSON body")
	}

	out := url.Values{}
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			out.Set(k, t)
		case json.Number:
			out.Set(k, t.String())
		case bool:
			out.Set(k, strconv.FormatBool(t))
		default:
			return nil, common.NewValidationError(k, "%s must be a scalar value", k)
		}
	}
	for k, vs := range r.URL.Query() {
		if !out.Has(k) {
			out[k] = vs
		}
	}
	return out, nil
}
