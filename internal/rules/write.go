package rules

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Severity tags a finding from a write check.
type Severity int

const (
	// SeverityWarning is advisory; it never changes the allow verdict.
	SeverityWarning Severity = iota
	// SeverityBlocked forces rejection of the entire write.
	SeverityBlocked
)

// Finding is one tagged message produced by a write check.
type Finding struct {
	Severity Severity
	Message  string
}

// WriteInput is the pending write under inspection. For partial edits,
// Content holds the replacement snippet and OldString the text it replaces.
type WriteInput struct {
	FilePath  string
	Content   string
	OldString string
}

// WriteResult partitions all collected findings. If Blocked is non-empty the
// write is rejected and Warnings must not be printed.
type WriteResult struct {
	Blocked  []string
	Warnings []string
}

// Allowed reports whether the write may proceed.
func (r WriteResult) Allowed() bool { return len(r.Blocked) == 0 }

// protectedEnvFiles must never be written through automated edits; their
// secrets are set manually.
var protectedEnvFiles = map[string]bool{
	".env.local":             true,
	".env.development.local": true,
	".env.test.local":        true,
	".env.production.local":  true,
}

// sourceExtensions gates content inspection; everything else passes through.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

// layoutBasenames are files recognized by name as shared layout templates.
var layoutBasenames = map[string]bool{
	"layout.tsx": true,
	"layout.ts":  true,
	"layout.jsx": true,
	"layout.js":  true,
}

// defaultExportAllowed are framework-special filenames that require a
// default export.
var defaultExportAllowed = map[string]bool{
	"page.tsx": true, "page.ts": true, "page.jsx": true, "page.js": true,
	"layout.tsx": true, "layout.ts": true, "layout.jsx": true, "layout.js": true,
	"loading.tsx": true, "loading.ts": true, "error.tsx": true, "error.ts": true,
	"not-found.tsx": true, "not-found.ts": true, "global-error.tsx": true, "global-error.ts": true,
	"template.tsx": true, "template.ts": true, "route.tsx": true, "route.ts": true,
	"default.tsx": true, "default.ts": true,
}

var (
	useFormStateRe  = regexp.MustCompile(`\buseFormState\b`)
	forwardRefRe    = regexp.MustCompile(`\bforwardRef\b`)
	pagesRouterRe   = regexp.MustCompile(`\b(getServerSideProps|getStaticProps)\b`)
	redirectInTryRe = regexp.MustCompile(`try\s*\{[^}]*\bredirect\s*\(`)

	cookiesHeadersCallRe = regexp.MustCompile(`\b(cookies|headers)\s*\(\s*\)`)

	paramsDestructureRe = regexp.MustCompile(`params\s*:\s*\{`)
	paramsPromiseRe     = regexp.MustCompile(`params\s*:\s*Promise\s*<`)
	paramsRefRe         = regexp.MustCompile(`\bparams\b`)
	awaitedParamsRe     = regexp.MustCompile(`await\s+params\b`)

	asyncFunctionRe = regexp.MustCompile(`\basync\s+function\b`)
	asyncArrowRe    = regexp.MustCompile(`\basync\s*\(`)

	imgTagRe         = regexp.MustCompile(`<img\s`)
	imageTagRe       = regexp.MustCompile(`<Image\b`)
	imageWithAltRe   = regexp.MustCompile(`<Image\b[^>]*\balt\s*=`)
	internalAnchorRe = regexp.MustCompile(`<a\s[^>]*href\s*=\s*["']/`)

	consoleLogRe    = regexp.MustCompile(`\bconsole\.log\(`)
	effectFetchRe   = regexp.MustCompile(`useEffect\s*\([^)]*\b(fetch\s*\(|await\s)`)
	defaultExportRe = regexp.MustCompile(`(?m)^export\s+default\b`)
)

// serverOnlyImports will fail at runtime when shipped to a browser context.
var serverOnlyImports = []struct {
	Pattern *regexp.Regexp
	Name    string
}{
	{regexp.MustCompile(`from\s+["']server-only["']`), "server-only module"},
	{regexp.MustCompile(`from\s+["']@/lib/db["']`), "database client (db)"},
	{regexp.MustCompile(`from\s+["']@/lib/auth["']`), "auth module (server-only)"},
}

// clientIndicators are the interactivity signals that justify a client
// directive: hooks, event-handler props, and browser globals.
var clientIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\buseState\b`),
	regexp.MustCompile(`\buseEffect\b`),
	regexp.MustCompile(`\buseRef\b`),
	regexp.MustCompile(`\buseReducer\b`),
	regexp.MustCompile(`\buseCallback\b`),
	regexp.MustCompile(`\buseMemo\b`),
	regexp.MustCompile(`\buseContext\b`),
	regexp.MustCompile(`\buseActionState\b`),
	regexp.MustCompile(`\buseFormStatus\b`),
	regexp.MustCompile(`\buseOptimistic\b`),
	regexp.MustCompile(`\bonClick\b`),
	regexp.MustCompile(`\bonChange\b`),
	regexp.MustCompile(`\bonSubmit\b`),
	regexp.MustCompile(`\bonKeyDown\b`),
	regexp.MustCompile(`\bonFocus\b`),
	regexp.MustCompile(`\bonBlur\b`),
	regexp.MustCompile(`\bwindow\b`),
	regexp.MustCompile(`\bdocument\b`),
	regexp.MustCompile(`\blocalStorage\b`),
	regexp.MustCompile(`\bsessionStorage\b`),
	regexp.MustCompile(`\bnavigator\b`),
	regexp.MustCompile(`\bcreateContext\b`),
}

func hasClientDirective(content string) bool {
	return strings.Contains(content, `"use client"`) || strings.Contains(content, `'use client'`)
}

func hasServerDirective(content string) bool {
	return strings.Contains(content, `"use server"`) || strings.Contains(content, `'use server'`)
}

func isTestPath(path string) bool {
	for _, p := range []string{".test.", ".spec.", "__tests__", "e2e/"} {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func blocked(msg string) Finding { return Finding{Severity: SeverityBlocked, Message: msg} }
func warning(msg string) Finding { return Finding{Severity: SeverityWarning, Message: msg} }

// checkLayoutClientDirective hard-blocks a client directive in a file
// recognized by name as a shared layout; layouts stay server-rendered and
// interactive pieces belong in a child component.
func checkLayoutClientDirective(path, content string) []Finding {
	if !layoutBasenames[filepath.Base(path)] {
		return nil
	}
	if !hasClientDirective(content) {
		return nil
	}
	return []Finding{blocked("BLOCKED: Adding 'use client' to " + path + ". " +
		"Layouts should be Server Components. Extract interactive parts into a separate Client Component.")}
}

// precededByAwait reports whether the six bytes before position i are
// exactly "await" plus one whitespace, the RE2 equivalent of the source's
// fixed-width negative lookbehind. Multi-line or reformatted call sites are
// misclassified the same way the original misclassifies them.
func precededByAwait(s string, i int) bool {
	if i < 6 {
		return false
	}
	if s[i-6:i-1] != "await" {
		return false
	}
	switch s[i-1] {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func hasUnawaitedCookiesOrHeaders(content string) bool {
	for _, loc := range cookiesHeadersCallRe.FindAllStringIndex(content, -1) {
		if !precededByAwait(content, loc[0]) {
			return true
		}
	}
	return false
}

// checkDeprecatedPatterns flags React/Next.js APIs this codebase has moved
// off of. redirect() inside a try block is a hard block because it throws
// NEXT_REDIRECT, which the catch swallows.
func checkDeprecatedPatterns(path, content string) []Finding {
	var out []Finding

	if useFormStateRe.MatchString(content) {
		out = append(out, blocked("BLOCKED: useFormState is deprecated in "+path+". Use useActionState from 'react' instead."))
	}
	if forwardRefRe.MatchString(content) {
		out = append(out, warning("WARNING: forwardRef detected in "+path+". React 19 supports ref as a regular prop - remove forwardRef wrapper."))
	}
	if pagesRouterRe.MatchString(content) {
		out = append(out, blocked("BLOCKED: Pages Router pattern detected in "+path+". "+
			"Use App Router data fetching (Server Components) instead of getServerSideProps/getStaticProps."))
	}
	if redirectInTryRe.MatchString(content) {
		out = append(out, blocked("BLOCKED: redirect() used inside try-catch in "+path+". "+
			"redirect() throws NEXT_REDIRECT which gets caught. Call redirect() outside try-catch or in a finally block."))
	}
	if hasUnawaitedCookiesOrHeaders(content) {
		out = append(out, warning("WARNING: cookies() or headers() may not be awaited in "+path+". "+
			"In Next.js 15, cookies() and headers() return Promises - await them."))
	}

	switch filepath.Base(path) {
	case "page.tsx", "page.ts", "layout.tsx", "layout.ts":
		if paramsDestructureRe.MatchString(content) && !paramsPromiseRe.MatchString(content) {
			if paramsRefRe.MatchString(content) && !awaitedParamsRe.MatchString(content) {
				out = append(out, warning("WARNING: params may not be awaited in "+path+". "+
					"In Next.js 15, params is a Promise - type it as Promise<...> and await it."))
			}
		}
	}
	return out
}

// checkAsyncClient blocks asynchronous function declarations in files that
// carry the client directive; only server-rendered files may be async.
func checkAsyncClient(path, content string) []Finding {
	if !hasClientDirective(content) {
		return nil
	}
	if asyncFunctionRe.MatchString(content) || asyncArrowRe.MatchString(content) {
		return []Finding{blocked("BLOCKED: Async function in 'use client' file " + path + ". " +
			"Only Server Components can be async. Remove async or remove 'use client'.")}
	}
	return nil
}

func checkServerOnlyImports(path, content string) []Finding {
	if !hasClientDirective(content) {
		return nil
	}
	var out []Finding
	for _, imp := range serverOnlyImports {
		if imp.Pattern.MatchString(content) {
			out = append(out, warning("WARNING: Importing "+imp.Name+" in 'use client' file "+path+". "+
				"This import is server-only and will fail in the browser."))
		}
	}
	return out
}

func checkMissingUseServer(path, content string) []Finding {
	if !strings.Contains(path, "/actions/") {
		return nil
	}
	if !strings.HasSuffix(path, ".ts") && !strings.HasSuffix(path, ".tsx") {
		return nil
	}
	if hasServerDirective(content) {
		return nil
	}
	return []Finding{warning("WARNING: File in actions/ directory without 'use server' directive: " + path + ". " +
		`Server Action files must have "use server" at the top.`)}
}

// checkMarkupHygiene runs on markup-bearing extensions only.
func checkMarkupHygiene(path, content string) []Finding {
	if !strings.HasSuffix(path, ".tsx") && !strings.HasSuffix(path, ".jsx") {
		return nil
	}
	var out []Finding
	if imgTagRe.MatchString(content) {
		out = append(out, warning("WARNING: <img> tag detected in "+path+". "+
			"Use next/image (<Image>) for automatic optimization, lazy loading, and srcset."))
	}
	if imageTagRe.MatchString(content) && !imageWithAltRe.MatchString(content) {
		out = append(out, warning("WARNING: <Image> without alt prop in "+path+". All images must have alt text for accessibility."))
	}
	if internalAnchorRe.MatchString(content) {
		out = append(out, warning(`WARNING: <a href="/..."> detected in `+path+". "+
			"Use next/link (<Link>) for internal navigation to enable client-side transitions."))
	}
	return out
}

// checkConsoleLog warns on direct console logging, escalated to a hard
// block under the actions path: server actions must use the structured
// logger. Test files are exempt.
func checkConsoleLog(path, content string) []Finding {
	if isTestPath(path) {
		return nil
	}
	if !consoleLogRe.MatchString(content) {
		return nil
	}
	if strings.Contains(path, "/actions/") {
		return []Finding{blocked("BLOCKED: console.log() detected in Server Action " + path + ". " +
			"Server Actions must use structured logger (import from @/lib/logger). " +
			"console.log has no structure, levels, or correlation.")}
	}
	return []Finding{warning("WARNING: console.log() detected in " + path + ". " +
		"Remove console.log before committing - use a proper logger for production.")}
}

func checkEffectFetch(path, content string) []Finding {
	if !effectFetchRe.MatchString(content) {
		return nil
	}
	return []Finding{warning("WARNING: useEffect appears to fetch data in " + path + ". " +
		"Data fetching in useEffect causes client-side waterfalls. Fetch data in Server Components instead.")}
}

func checkDefaultExport(path, content string) []Finding {
	if defaultExportAllowed[filepath.Base(path)] {
		return nil
	}
	if !strings.Contains(path, "/components/") && !strings.Contains(path, "/hooks/") {
		return nil
	}
	if !defaultExportRe.MatchString(content) {
		return nil
	}
	return []Finding{warning("WARNING: Default export in non-page file " + path + ". " +
		"Components should use named exports for better refactoring and tree-shaking.")}
}

func checkUnnecessaryClient(path, content string) []Finding {
	if !hasClientDirective(content) {
		return nil
	}
	for _, p := range clientIndicators {
		if p.MatchString(content) {
			return nil
		}
	}
	return []Finding{warning("WARNING: " + path + " is marked 'use client' but doesn't appear to use " +
		"any client-side features (hooks, event handlers, browser APIs). " +
		"Consider removing 'use client' to keep it as a Server Component.")}
}

// EvalWrite classifies a pending file write. A missing path, a protected
// env file, no inspectable content, or a non-source extension resolve before
// the content checks; within the content phase every check runs and the
// findings are concatenated, blocks winning over warnings.
func EvalWrite(in WriteInput, extras SecretExtras) WriteResult {
	if in.FilePath == "" {
		return WriteResult{}
	}

	if protectedEnvFiles[filepath.Base(in.FilePath)] {
		return WriteResult{Blocked: []string{"BLOCKED: Cannot write to .env.local files - add secrets manually"}}
	}

	if in.Content == "" && in.OldString == "" {
		return WriteResult{}
	}

	if !sourceExtensions[filepath.Ext(in.FilePath)] {
		return WriteResult{}
	}

	var findings []Finding
	findings = append(findings, checkLayoutClientDirective(in.FilePath, in.Content)...)
	for _, msg := range scanSecrets(in.Content, extras) {
		findings = append(findings, blocked(msg))
	}
	if in.OldString != "" {
		for _, msg := range scanSecrets(in.OldString, extras) {
			findings = append(findings, blocked(msg))
		}
	}
	findings = append(findings, checkDeprecatedPatterns(in.FilePath, in.Content)...)
	findings = append(findings, checkAsyncClient(in.FilePath, in.Content)...)
	findings = append(findings, checkServerOnlyImports(in.FilePath, in.Content)...)
	findings = append(findings, checkMissingUseServer(in.FilePath, in.Content)...)
	findings = append(findings, checkMarkupHygiene(in.FilePath, in.Content)...)
	findings = append(findings, checkConsoleLog(in.FilePath, in.Content)...)
	findings = append(findings, checkEffectFetch(in.FilePath, in.Content)...)
	findings = append(findings, checkDefaultExport(in.FilePath, in.Content)...)
	findings = append(findings, checkUnnecessaryClient(in.FilePath, in.Content)...)

	var result WriteResult
	for _, f := range findings {
		if f.Severity == SeverityBlocked {
			result.Blocked = append(result.Blocked, f.Message)
		} else {
			result.Warnings = append(result.Warnings, f.Message)
		}
	}
	return result
}
