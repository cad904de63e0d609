package detector

import (
	"regexp"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func allLangs() []types.Language {
	return []types.Language{
		types.LanguageGo, types.LanguageTypeScript, types.LanguageJavaScript,
		types.LanguagePython, types.LanguageJava, types.LanguageCSharp,
		types.LanguagePHP, types.LanguageRust,
	}
}

func webLangs() []types.Language {
	return []types.Language{types.LanguageTypeScript, types.LanguageJavaScript, types.LanguagePython, types.LanguageJava, types.LanguageCSharp, types.LanguagePHP, types.LanguageGo}
}

func reGroup(tag, pattern string, confidence float64) RegexGroup {
	return RegexGroup{Tag: tag, Pattern: regexp.MustCompile(pattern), Confidence: confidence}
}

// regexCatalog is the data-driven backbone of Drift's ~60-detector budget
// (spec §2 row "Detector Framework", §4.5 "catalog of pattern detectors").
// Each entry still satisfies the full Detector contract via RegexDetector;
// detectors whose outlier semantics need structured (not line-regex) input
// are implemented separately in structural.go, api.go, and dataaccess.go.
func regexCatalog() []RegexDetectorConfig {
	return []RegexDetectorConfig{
		// --- API ---
		{
			ID: "api.rest-verb-naming", Name: "REST verb naming", Category: types.CategoryAPI,
			Subcategory: "routing", Languages: webLangs(),
			Groups: []RegexGroup{
				reGroup("express", `\.(get|post|put|patch|delete)\s*\(\s*['"` + "`" + `]`, 0.9),
				reGroup("fastapi", `@(app|router)\.(get|post|put|patch|delete)\s*\(`, 0.9),
				reGroup("gin", `\.(GET|POST|PUT|PATCH|DELETE)\s*\(\s*"`, 0.9),
			},
		},
		{
			ID: "api.versioned-path", Name: "Versioned API path", Category: types.CategoryAPI,
			Subcategory: "versioning", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("v-prefix", `['"` + "`" + `]/api/v\d+/`, 0.8)},
		},
		{
			ID: "api.openapi-annotation", Name: "OpenAPI/Swagger annotation", Category: types.CategoryAPI,
			Subcategory: "documentation", Languages: webLangs(),
			Groups: []RegexGroup{
				reGroup("swagger-jsdoc", `@swagger`, 0.85),
				reGroup("fastapi-tags", `response_model\s*=`, 0.7),
			},
		},
		{
			ID: "api.cors-header", Name: "CORS header handling", Category: types.CategoryAPI,
			Subcategory: "cors", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("cors", `Access-Control-Allow-Origin`, 0.8)},
		},
		{
			ID: "api.pagination-params", Name: "Pagination query params", Category: types.CategoryAPI,
			Subcategory: "pagination", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("limit-offset", `\b(limit|offset|page|pageSize|cursor)\b\s*[:=]`, 0.6)},
		},
		{
			ID: "api.rate-limit-header", Name: "Rate-limit header/middleware", Category: types.CategoryAPI,
			Subcategory: "rate-limiting", Languages: webLangs(),
			Groups: []RegexGroup{
				reGroup("header", `X-RateLimit-(Limit|Remaining|Reset)`, 0.8),
				reGroup("middleware", `\brateLimit\s*\(\s*\{`, 0.75),
			},
		},
		{
			ID: "api.idempotency-key", Name: "Idempotency key handling", Category: types.CategoryAPI,
			Subcategory: "idempotency", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("idempotency-key", `Idempotency-Key|idempotencyKey`, 0.75)},
		},
		{
			ID: "api.graphql-resolver", Name: "GraphQL resolver definition", Category: types.CategoryAPI,
			Subcategory: "graphql", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("resolver", `\b(Query|Mutation)\s*:\s*\{|@Resolver\(`, 0.8)},
		},

		// --- Auth ---
		{
			ID: "auth.middleware-guard", Name: "Auth middleware guard", Category: types.CategoryAuth,
			Subcategory: "middleware", Languages: webLangs(),
			Groups: []RegexGroup{
				reGroup("express-mw", `\b(requireAuth|isAuthenticated|authMiddleware|ensureLoggedIn)\s*\(`, 0.85),
				reGroup("decorator", `@(login_required|permission_required|Authorize|PreAuthorize)\b`, 0.9),
			},
		},
		{
			ID: "auth.jwt-verify", Name: "JWT verification call", Category: types.CategoryAuth,
			Subcategory: "token", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("jwt-verify", `jwt\.(verify|decode)\s*\(`, 0.9)},
		},
		{
			ID: "auth.role-check", Name: "Role/permission check", Category: types.CategoryAuth,
			Subcategory: "authorization", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("role-check", `\b(hasRole|hasPermission|can\()\s*\(`, 0.75)},
		},
		{
			ID: "auth.session-access", Name: "Session store access", Category: types.CategoryAuth,
			Subcategory: "session", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("session", `\breq\.session\b|request\.session\b`, 0.7)},
		},
		{
			ID: "auth.api-key-header", Name: "API key header validation", Category: types.CategoryAuth,
			Subcategory: "api-key", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("api-key-header", `X-API-Key|Authorization:\s*Bearer`, 0.65)},
		},
		{
			ID: "auth.oauth-scope", Name: "OAuth scope check", Category: types.CategoryAuth,
			Subcategory: "oauth", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("scope-check", `\bscopes?\.includes\(|required_scope\s*=`, 0.7)},
		},

		// --- Logging ---
		{
			ID: "logging.library-call", Name: "Structured logging library call", Category: types.CategoryLogging,
			Subcategory: "library", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("zap", `\b(zap\.|logger\.(Info|Warn|Error|Debug)\()`, 0.9),
				reGroup("winston", `\bwinston\.(createLogger|log)\(`, 0.9),
				reGroup("pino", `\bpino\(`, 0.9),
				reGroup("slog", `\bslog\.(Info|Warn|Error|Debug)\(`, 0.9),
				reGroup("console", `\bconsole\.(log|warn|error|info)\(`, 0.5),
				reGroup("print", `\bfmt\.Print|print\(`, 0.4),
			},
		},
		{
			ID: "logging.correlation-id", Name: "Request correlation id propagation", Category: types.CategoryLogging,
			Subcategory: "tracing", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("correlation-id", `\b(requestId|correlationId|traceId|X-Request-Id)\b`, 0.7)},
		},
		{
			ID: "logging.sensitive-field", Name: "Logging a sensitive-looking field", Category: types.CategoryLogging,
			Subcategory: "hygiene", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("sensitive", `\blog\w*\([^)]*\b(password|token|secret|ssn)\b`, 0.6)},
		},
		{
			ID: "logging.log-level-config", Name: "Configurable log level", Category: types.CategoryLogging,
			Subcategory: "configuration", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("level-config", `(?i)log[_.]?level\s*[:=]\s*['"]?(debug|info|warn|error)`, 0.6)},
		},
		{
			ID: "logging.structured-fields", Name: "Structured key-value log fields", Category: types.CategoryLogging,
			Subcategory: "structure", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("zap-fields", `zap\.(String|Int|Error|Any)\(`, 0.8),
				reGroup("logrus-fields", `\.WithField(s)?\(`, 0.8),
			},
		},

		// --- Performance ---
		{
			ID: "performance.n-plus-one-loop", Name: "Query call inside a loop", Category: types.CategoryPerformance,
			Subcategory: "n-plus-one", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("loop-query", `for\s*\(.*\)\s*\{?\s*$`, 0.4)},
		},
		{
			ID: "performance.sync-fs-in-handler", Name: "Synchronous I/O in a request handler", Category: types.CategoryPerformance,
			Subcategory: "blocking-io", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("sync-fs", `fs\.\w+Sync\s*\(`, 0.75)},
		},
		{
			ID: "performance.missing-index-hint", Name: "Query missing an index hint comment", Category: types.CategoryPerformance,
			Subcategory: "indexing", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("select-star", `(?i)select\s+\*\s+from`, 0.5)},
		},
		{
			ID: "performance.cache-read", Name: "Cache lookup before data access", Category: types.CategoryPerformance,
			Subcategory: "caching", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("cache-get", `\b(cache|redis)\.(get|Get)\s*\(`, 0.7)},
		},
		{
			ID: "performance.bulk-insert", Name: "Bulk insert over row-at-a-time", Category: types.CategoryPerformance,
			Subcategory: "batching", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("bulk-insert", `(?i)(bulk_?create|insertMany|BatchInsert|COPY\s+\w+\s+FROM)`, 0.7)},
		},
		{
			ID: "performance.connection-pool-config", Name: "Connection pool size configuration", Category: types.CategoryPerformance,
			Subcategory: "pooling", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("pool-size", `(?i)(max_?open_?conns|pool_?size|maxPoolSize)\s*[:=(]`, 0.65)},
		},

		// --- Documentation ---
		{
			ID: "documentation.exported-doc-comment", Name: "Doc comment on an exported symbol", Category: types.CategoryDocumentation,
			Subcategory: "coverage", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("godoc", `^// [A-Z]\w*`, 0.7),
				reGroup("jsdoc", `/\*\*`, 0.7),
				reGroup("docstring", `"""`, 0.6),
			},
		},
		{
			ID: "documentation.todo-marker", Name: "TODO/FIXME marker", Category: types.CategoryDocumentation,
			Subcategory: "debt", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("todo", `\b(TODO|FIXME|HACK)\b`, 0.9)},
		},
		{
			ID: "documentation.readme-code-block", Name: "Fenced code block in docs", Category: types.CategoryDocumentation,
			Subcategory: "examples", Languages: []types.Language{types.LanguageMarkdown},
			Groups: []RegexGroup{reGroup("fence", "^```", 0.6)},
		},
		{
			ID: "documentation.changelog-entry", Name: "Changelog entry format", Category: types.CategoryDocumentation,
			Subcategory: "changelog", Languages: []types.Language{types.LanguageMarkdown},
			Groups: []RegexGroup{reGroup("version-heading", `^##\s*\[?\d+\.\d+\.\d+`, 0.7)},
		},

		// --- Accessibility ---
		{
			ID: "accessibility.missing-alt", Name: "img tag without alt attribute", Category: types.CategoryAccessibility,
			Subcategory: "images", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("img-no-alt", `<img\b(?:[^a>]|a[^l>]|al[^t>]|alt[^=>])*/?>`, 0.6)},
		},
		{
			ID: "accessibility.aria-label", Name: "ARIA label usage", Category: types.CategoryAccessibility,
			Subcategory: "aria", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("aria-label", `aria-label\s*=`, 0.7)},
		},
		{
			ID: "accessibility.click-without-key", Name: "onClick without keyboard handler", Category: types.CategoryAccessibility,
			Subcategory: "keyboard", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("onclick-only", `onClick=\{[^}]*\}`, 0.4)},
		},
		{
			ID: "accessibility.semantic-heading", Name: "Semantic heading element usage", Category: types.CategoryAccessibility,
			Subcategory: "semantics", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("heading-tag", `<h[1-6]\b`, 0.6)},
		},

		// --- Security ---
		{
			ID: "security.hardcoded-secret", Name: "Hardcoded credential literal", Category: types.CategorySecurity,
			Subcategory: "secrets", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("api-key", `(?i)(api[_-]?key|secret|password)\s*[:=]\s*['"][A-Za-z0-9_\-]{8,}['"]`, 0.75),
				reGroup("aws-key", `AKIA[0-9A-Z]{16}`, 0.95),
			},
		},
		{
			ID: "security.string-concat-sql", Name: "SQL built via string concatenation", Category: types.CategorySecurity,
			Subcategory: "injection", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("concat-sql", `(?i)(select|insert|update|delete)\b.*["'`+"`"+`]\s*\+\s*\w+`, 0.7)},
		},
		{
			ID: "security.eval-usage", Name: "Dynamic eval/exec call", Category: types.CategorySecurity,
			Subcategory: "code-injection", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("eval", `\b(eval|exec)\s*\(`, 0.6)},
		},
		{
			ID: "security.tls-skip-verify", Name: "TLS verification disabled", Category: types.CategorySecurity,
			Subcategory: "transport", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("insecure-skip-verify", `InsecureSkipVerify\s*:\s*true`, 0.9),
				reGroup("node-tls-reject", `NODE_TLS_REJECT_UNAUTHORIZED`, 0.8),
			},
		},
		{
			ID: "security.cors-wildcard", Name: "Wildcard CORS origin", Category: types.CategorySecurity,
			Subcategory: "cors", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("cors-star", `Access-Control-Allow-Origin.{0,3}[*]`, 0.8)},
		},
		{
			ID: "security.unvalidated-redirect", Name: "Unvalidated redirect target", Category: types.CategorySecurity,
			Subcategory: "redirect", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("redirect-param", `redirect\s*\(\s*req\.(query|params|body)\.\w+`, 0.6)},
		},

		// --- Testing ---
		{
			ID: "testing.naming-scheme", Name: "Test case naming scheme", Category: types.CategoryTesting,
			Subcategory: "naming", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("should-prefix", `\bit\(\s*['"` + "`" + `]should `, 0.7),
				reGroup("test-prefix", `\bdef test_\w+`, 0.7),
				reGroup("go-test-func", `^func Test\w+\(t \*testing\.T\)`, 0.7),
			},
		},
		{
			ID: "testing.table-driven", Name: "Table-driven test cases", Category: types.CategoryTesting,
			Subcategory: "structure", Languages: []types.Language{types.LanguageGo},
			Groups: []RegexGroup{reGroup("tt-range", `for\s+_,\s*tt\s*:?=\s*range`, 0.7)},
		},
		{
			ID: "testing.mock-usage", Name: "Mock/stub framework usage", Category: types.CategoryTesting,
			Subcategory: "doubles", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("jest-mock", `jest\.(mock|fn|spyOn)\(`, 0.8),
				reGroup("testify-mock", `mock\.(Mock|Anything)\b`, 0.8),
				reGroup("pytest-monkeypatch", `monkeypatch\.(setattr|setenv)\(`, 0.75),
			},
		},
		{
			ID: "testing.assertion-library", Name: "Assertion library usage", Category: types.CategoryTesting,
			Subcategory: "assertions", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("testify", `\b(require|assert)\.(Equal|NoError|True|False|Nil)\(`, 0.8),
				reGroup("jest-expect", `\bexpect\([^)]*\)\.(to|toBe|toEqual)`, 0.8),
			},
		},
		{
			ID: "testing.snapshot-test", Name: "Snapshot test assertion", Category: types.CategoryTesting,
			Subcategory: "snapshot", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("snapshot", `toMatchSnapshot\(|assert_snapshot\(`, 0.75)},
		},

		// --- Structural ---
		{
			ID: "structural.barrel-export", Name: "Barrel re-export file", Category: types.CategoryStructural,
			Subcategory: "module-layout", Languages: []types.Language{types.LanguageTypeScript, types.LanguageJavaScript},
			Groups: []RegexGroup{reGroup("export-star", `export\s+\*\s+from\s+['"` + "`" + `]`, 0.6)},
		},
		{
			ID: "structural.dependency-injection", Name: "Constructor dependency injection", Category: types.CategoryStructural,
			Subcategory: "di", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("nest-inject", `@Inject\(`, 0.8),
				reGroup("spring-autowired", `@Autowired`, 0.8),
			},
		},
		{
			ID: "structural.feature-flag", Name: "Feature-flag branch", Category: types.CategoryStructural,
			Subcategory: "flags", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("flag-check", `\b(isEnabled|featureFlag|flags\.\w+)\s*\(`, 0.6)},
		},
		{
			ID: "structural.repository-pattern", Name: "Repository-pattern data access wrapper", Category: types.CategoryStructural,
			Subcategory: "repository", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("repo-suffix", `\btype \w+Repository\b|class \w+Repository\b`, 0.7)},
		},

		// --- Observability ---
		{
			ID: "observability.metric-emit", Name: "Metric emission call", Category: types.CategoryObservability,
			Subcategory: "metrics", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("prometheus", `\.(Inc|Observe|Set)\s*\(\)?`, 0.6),
				reGroup("statsd", `statsd\.(increment|timing|gauge)\(`, 0.8),
			},
		},
		{
			ID: "observability.tracing-span", Name: "Tracing span creation", Category: types.CategoryObservability,
			Subcategory: "tracing", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("otel-span", `\.(StartSpan|Tracer\(\)\.Start)\(`, 0.8),
				reGroup("sentry-span", `Sentry\.startTransaction\(`, 0.8),
			},
		},
		{
			ID: "observability.health-endpoint", Name: "Health-check endpoint", Category: types.CategoryObservability,
			Subcategory: "health", Languages: webLangs(),
			Groups: []RegexGroup{reGroup("health-route", `['"` + "`" + `]/(healthz|health|ping)['\"` + "`" + `]`, 0.7)},
		},
		{
			ID: "observability.alert-threshold", Name: "Alert threshold configuration", Category: types.CategoryObservability,
			Subcategory: "alerting", Languages: allLangs(),
			Groups: []RegexGroup{reGroup("threshold", `(?i)(alert_?threshold|critical_?threshold)\s*[:=]`, 0.6)},
		},

		// --- Error handling ---
		{
			ID: "error-handling.wrapped-error", Name: "Wrapped error with context", Category: types.CategoryErrorHandling,
			Subcategory: "wrapping", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("go-wrap", `fmt\.Errorf\([^)]*%w`, 0.85),
				reGroup("js-cause", `new Error\([^)]*\{\s*cause`, 0.7),
			},
		},
		{
			ID: "error-handling.panic-recover", Name: "panic/recover usage", Category: types.CategoryErrorHandling,
			Subcategory: "control-flow", Languages: []types.Language{types.LanguageGo},
			Groups: []RegexGroup{reGroup("recover", `\bdefer\s+func\(\)\s*\{\s*recover\(\)`, 0.75)},
		},
		{
			ID: "error-handling.swallowed-error", Name: "Swallowed/ignored error", Category: types.CategoryErrorHandling,
			Subcategory: "hygiene", Languages: []types.Language{types.LanguageGo},
			Groups: []RegexGroup{reGroup("blank-err", `_\s*=\s*\w+\.\w+\([^)]*\)\s*//\s*ignore`, 0.5)},
		},
		{
			ID: "error-handling.custom-error-type", Name: "Custom typed error", Category: types.CategoryErrorHandling,
			Subcategory: "taxonomy", Languages: allLangs(),
			Groups: []RegexGroup{
				reGroup("go-struct-error", `type \w+Error struct`, 0.8),
				reGroup("js-class-error", `class \w+Error extends Error`, 0.8),
				reGroup("py-exception", `class \w+Error\(\w*Exception\)`, 0.8),
			},
		},
		{
			ID: "error-handling.sentinel-error", Name: "Sentinel error value", Category: types.CategoryErrorHandling,
			Subcategory: "sentinel", Languages: []types.Language{types.LanguageGo},
			Groups: []RegexGroup{reGroup("errors-new-var", `var Err\w+\s*=\s*errors\.New\(`, 0.85)},
		},
	}
}

// BuildCatalog instantiates every RegexDetectorConfig as a registered
// Detector value.
func BuildCatalog() []Detector {
	cfgs := regexCatalog()
	out := make([]Detector, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, NewRegexDetector(c))
	}
	return out
}
