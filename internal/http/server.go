// Package http serves the ledger UI: an html/template + htmx front end
// over the in-memory transaction store.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"kakeibo/internal/cache"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/middleware/ratelimit"
	"kakeibo/internal/middleware/security"
	"kakeibo/internal/middleware/trace"
	appweb "kakeibo/web"
)

// Cache keys for the derived-view snapshots. The whole list feeds every
// view, so one key per view is enough; mutations invalidate all three.
const (
	cacheKeyTotals     = "totals"
	cacheKeyMonthly    = "monthly"
	cacheKeyCategories = "categories"
)

// Options configures the server's ambient behavior.
type Options struct {
	RateLimitPerMinute int
	CacheTTL           time.Duration
	CacheMaxEntries    int
}

// DefaultOptions returns the defaults used when an Options field is zero.
func DefaultOptions() Options {
	return Options{
		RateLimitPerMinute: 60,
		CacheTTL:           5 * time.Minute,
		CacheMaxEntries:    100,
	}
}

type Server struct {
	http.Server
	templates *template.Template

	appender ledger.TransactionAppender
	remover  ledger.TransactionRemover
	lister   ledger.TransactionLister
	taxonomy ledger.TaxonomyReader

	limiter  *ratelimit.Limiter
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware
	cacheMgr *cache.Manager

	totalsCache     *cache.LRUCache[core.Totals]
	monthlyCache    *cache.LRUCache[[]core.MonthlySummary]
	categoriesCache *cache.LRUCache[[]core.CategorySummary]

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, store interface {
	ledger.TransactionAppender
	ledger.TransactionRemover
	ledger.TransactionLister
	ledger.TaxonomyReader
}, opts Options) *Server {
	def := DefaultOptions()
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = def.RateLimitPerMinute
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = def.CacheTTL
	}
	if opts.CacheMaxEntries <= 0 {
		opts.CacheMaxEntries = def.CacheMaxEntries
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		appender: store,
		remover:  store,
		lister:   store,
		taxonomy: store,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		headers:         security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:          trace.NewMiddleware(clientIP),
		cacheMgr:        cache.NewManager(),
		totalsCache:     cache.NewLRUCache[core.Totals](opts.CacheMaxEntries, opts.CacheTTL),
		monthlyCache:    cache.NewLRUCache[[]core.MonthlySummary](opts.CacheMaxEntries, opts.CacheTTL),
		categoriesCache: cache.NewLRUCache[[]core.CategorySummary](opts.CacheMaxEntries, opts.CacheTTL),
	}

	s.cacheMgr.Register(s.totalsCache)
	s.cacheMgr.Register(s.monthlyCache)
	s.cacheMgr.Register(s.categoriesCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.Handle("/", s.wrap(http.HandlerFunc(s.handleIndex)))
	mux.Handle("/transactions", s.wrapMutating(http.HandlerFunc(s.handleCreateTransaction)))
	mux.Handle("/transactions/delete", s.wrapMutating(http.HandlerFunc(s.handleDeleteTransactions)))

	// UI partials
	mux.Handle("/ui/summary", s.wrap(http.HandlerFunc(s.handleSummaryPartial)))
	mux.Handle("/ui/transactions", s.wrap(http.HandlerFunc(s.handleTransactionsPartial)))
	mux.Handle("/ui/monthly", s.wrap(http.HandlerFunc(s.handleMonthlyPartial)))
	mux.Handle("/ui/categories", s.wrap(http.HandlerFunc(s.handleCategoriesPartial)))
	mux.Handle("/ui/entry-form", s.wrap(http.HandlerFunc(s.handleEntryFormPartial)))

	return s
}

// wrap applies tracing and security headers.
func (s *Server) wrap(next http.Handler) http.Handler {
	return s.tracer.Middleware(s.headers.Middleware(next))
}

// wrapMutating additionally rate limits per client IP.
func (s *Server) wrapMutating(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(clientIP, func(w http.ResponseWriter, r *http.Request) {
		slog.WarnContext(r.Context(), "Rate limit exceeded",
			"client_ip", clientIP(r), "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Retry-After", "60")
		http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	})
	return s.wrap(limited(next))
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// snapshot returns the current transaction list; derived views below all
// start from it.
func (s *Server) snapshot(ctx context.Context) ([]core.Transaction, error) {
	return s.lister.List(ctx)
}

func (s *Server) getTotals(ctx context.Context) (core.Totals, error) {
	if data, found := s.totalsCache.Get(cacheKeyTotals); found {
		slog.DebugContext(ctx, "Totals cache hit")
		return data, nil
	}
	list, err := s.snapshot(ctx)
	if err != nil {
		return core.Totals{}, err
	}
	data := core.Summarize(list)
	s.totalsCache.Set(cacheKeyTotals, data)
	return data, nil
}

func (s *Server) getMonthly(ctx context.Context) ([]core.MonthlySummary, error) {
	if data, found := s.monthlyCache.Get(cacheKeyMonthly); found {
		slog.DebugContext(ctx, "Monthly cache hit")
		return data, nil
	}
	list, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data := core.MonthlySummaries(list)
	s.monthlyCache.Set(cacheKeyMonthly, data)
	return data, nil
}

func (s *Server) getCategories(ctx context.Context) ([]core.CategorySummary, error) {
	if data, found := s.categoriesCache.Get(cacheKeyCategories); found {
		slog.DebugContext(ctx, "Categories cache hit")
		return data, nil
	}
	list, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data := core.ExpenseCategorySummaries(list)
	s.categoriesCache.Set(cacheKeyCategories, data)
	return data, nil
}

// invalidateViews drops all derived-view snapshots after a mutation.
func (s *Server) invalidateViews() {
	s.totalsCache.Delete(cacheKeyTotals)
	s.monthlyCache.Delete(cacheKeyMonthly)
	s.categoriesCache.Delete(cacheKeyCategories)
}
