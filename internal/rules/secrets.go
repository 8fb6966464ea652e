package rules

import "regexp"

// secretPattern describes one credential shape in the catalogue.
type secretPattern struct {
	Pattern *regexp.Regexp
	Name    string
}

// secretCatalogue covers the credential shapes seen in this stack: provider
// keys, SaaS token prefixes, PEM headers, connection strings with embedded
// passwords, JWT-shaped strings, and generic key assignments.
var secretCatalogue = []secretPattern{
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "OpenAI/Stripe secret key"},
	{regexp.MustCompile(`sk-ant-api03-[a-zA-Z0-9_-]+`), "Anthropic API key"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "AWS Access Key ID"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), "GitHub Personal Access Token"},
	{regexp.MustCompile(`gho_[a-zA-Z0-9]{36}`), "GitHub OAuth Token"},
	{regexp.MustCompile(`xoxb-[0-9a-zA-Z-]+`), "Slack Bot Token"},
	{regexp.MustCompile(`xoxp-[0-9a-zA-Z-]+`), "Slack User Token"},
	{regexp.MustCompile(`-----BEGIN (RSA |EC )?PRIVATE KEY-----`), "Private Key"},
	{regexp.MustCompile(`postgres(?:ql)?://[^:]+:[^@]+@`), "Database connection string with password"},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+`), "JWT token"},
	{regexp.MustCompile(`(api_key|apiKey|API_KEY)\s*[:=]\s*["'][^"']+["']`), "Hardcoded API key"},
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), "Firebase API key"},
	{regexp.MustCompile(`vercel_[a-zA-Z0-9_]{20,}`), "Vercel token"},
	{regexp.MustCompile(`sb-[a-zA-Z0-9_-]{20,}`), "Supabase key"},
}

// SecretExtras holds overlay-supplied secret patterns, appended after the
// built-in catalogue.
type SecretExtras []secretPattern

// NewSecretExtra builds an overlay secret pattern entry.
func NewSecretExtra(p *regexp.Regexp, name string) secretPattern {
	return secretPattern{Pattern: p, Name: name}
}

// scanSecrets returns one blocked message per catalogue entry that matches.
func scanSecrets(content string, extras SecretExtras) []string {
	var out []string
	catalogue := secretCatalogue
	if len(extras) > 0 {
		catalogue = append(append([]secretPattern{}, catalogue...), extras...)
	}
	for _, sp := range catalogue {
		if sp.Pattern.MatchString(content) {
			out = append(out, "BLOCKED: Hardcoded "+sp.Name+" detected. Use environment variables instead.")
		}
	}
	return out
}
