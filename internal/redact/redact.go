// Package redact scrubs credentials out of prompt text before it leaves the
// process for a third-party model.
package redact

import "regexp"

const placeholder = "[REDACTED]"

type rule struct {
	name string
	re   *regexp.Regexp
}

var rules = []rule{
	{"aws_access_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws_secret", regexp.MustCompile(`(?i)(aws_secret_access_key|aws_secret)\s*[:=]\s*[A-Za-z0-9/+=]{40}`)},
	{"private_key", regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`)},
	{"bearer", regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`)},
	{"google_api_key", regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)},
	{"model_api_key", regexp.MustCompile(`sk-(?:ant-|proj-)?[A-Za-z0-9\-_]{20,}`)},
	{"github_token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)},
	{"assignment", regexp.MustCompile(`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`)},
}

// Redact replaces secret patterns in text with [REDACTED].
func Redact(text string) string {
	out, _ := Scan(text)
	return out
}

// Scan redacts text and returns the names of the rules that fired, in rule order.
func Scan(text string) (string, []string) {
	var hits []string
	for _, r := range rules {
		if !r.re.MatchString(text) {
			continue
		}
		hits = append(hits, r.name)
		text = r.re.ReplaceAllString(text, placeholder)
	}
	return text, hits
}
