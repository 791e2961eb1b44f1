package pkg

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// IntPathVar reads a positive integer route variable, e.g. {id}.
func IntPathVar(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	if raw == "" {
		return 0, fmt.Errorf("%s empty", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}

// IsJSONRequest checks the request content type, ignoring parameters like charset.
func IsJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	for i := 0; i < len(ct); i++ {
		if ct[i] == ';' {
			ct = ct[:i]
			break
		}
	}
	return ct == ContentType.JSON
}
