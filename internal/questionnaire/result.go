package questionnaire

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names of the results view.
const (
	ParamProfile     = "perfil"
	ParamScore       = "pontuacao"
	ParamDescription = "descricao"
)

// ResultURL builds the results view address for r. Values are
// percent-encoded with spaces as %20, so free-text descriptions survive.
func ResultURL(path string, r Result) string {
	return fmt.Sprintf("%s?%s=%s&%s=%s&%s=%s",
		path,
		ParamProfile, encodeComponent(r.Profile),
		ParamScore, FormatScore(r.Score),
		ParamDescription, encodeComponent(r.Description),
	)
}

// ParseResultURL reads a Result back out of a results view address.
func ParseResultURL(target string) (Result, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Result{}, fmt.Errorf("parse result url: %w", err)
	}
	q := u.Query()

	var r Result
	r.Profile = q.Get(ParamProfile)
	r.Description = q.Get(ParamDescription)
	if s := q.Get(ParamScore); s != "" {
		r.Score, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return Result{}, fmt.Errorf("parse %s %q: %w", ParamScore, s, err)
		}
	}
	return r, nil
}

// FormatScore renders a score with the fewest digits needed: 7, 7.5.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// encodeComponent escapes s for use as a query value. QueryEscape already
// escapes a literal '+', so the remaining '+' are all spaces.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
