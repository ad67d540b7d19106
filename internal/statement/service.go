package statement

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/gabarit/internal/gabarit"
	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/store"
	"github.com/abhisek/gabarit/internal/style"
	"github.com/abhisek/gabarit/internal/templatecache"
	"github.com/abhisek/gabarit/internal/textnorm"
	"github.com/abhisek/gabarit/internal/visibility"
)

// Config tunes a Service.
type Config struct {
	// RecentStyles is how many past statements of the same chapter and
	// kind are consulted to avoid repeating a style.
	RecentStyles int

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{RecentStyles: 3}
}

// Service generates statements. Fallback and History may be nil.
type Service struct {
	Cache    *templatecache.Cache
	Gabarits *gabarit.Loader
	Selector *style.Selector
	Fallback Fallback
	History  store.StatementRepo

	cfg Config
	log *slog.Logger
}

// NewService wires a Service. cache, gabarits and selector are required.
func NewService(cache *templatecache.Cache, gabarits *gabarit.Loader, selector *style.Selector,
	fallback Fallback, history store.StatementRepo, cfg Config,
) *Service {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cache:    cache,
		Gabarits: gabarits,
		Selector: selector,
		Fallback: fallback,
		History:  history,
		cfg:      cfg,
		log:      log,
	}
}

// Generate produces a sujet for spec.
func (s *Service) Generate(ctx context.Context, spec *mathspec.Spec, opts Options) (*Statement, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}

	st, err := s.pickStyle(ctx, spec, opts)
	if err != nil {
		return nil, err
	}

	theme := opts.Theme
	if theme == "" {
		theme = spec.Theme
	}
	key := style.BuildCacheKey(spec.Chapter, spec.Kind, spec.Difficulty, st, theme)

	values, answerValues := s.Gabarits.Prepare(spec)
	answers := slices.Sorted(maps.Keys(answerValues))

	tpl, src, err := s.resolve(ctx, spec, st, key, values, answers)
	if err != nil {
		return nil, err
	}

	text := templatecache.Interpolate(tpl, values)
	unresolved := missing(tpl, values)
	if len(unresolved) > 0 {
		s.log.Warn("unresolved placeholders left in statement",
			"key", key, "source", src, "placeholders", unresolved)
	}

	stmt := &Statement{
		ID:         uuid.NewString(),
		CacheKey:   key,
		Style:      st,
		Source:     src,
		Template:   tpl,
		Text:       text,
		Unresolved: unresolved,
		Solution:   solution(values, answerValues),
		Visibility: visibility.Decide(spec.Kind, visibility.MetadataFromSpec(spec)),
	}
	s.record(ctx, spec, stmt)
	return stmt, nil
}

// pickStyle honors an explicit style, otherwise draws one avoiding the
// recent history, preferring styles that have a gabarit.
func (s *Service) pickStyle(ctx context.Context, spec *mathspec.Spec, opts Options) (style.Style, error) {
	if opts.Style != "" {
		if !opts.Style.Valid() {
			return "", fmt.Errorf("unknown style %q", opts.Style)
		}
		return opts.Style, nil
	}

	exclude := slices.Clone(opts.Exclude)
	if s.History != nil && s.cfg.RecentStyles > 0 {
		recent, err := s.History.RecentStyles(ctx, textnorm.Key(spec.Chapter), textnorm.Key(spec.Kind), s.cfg.RecentStyles)
		if err != nil {
			s.log.Warn("read recent styles", "error", err)
		}
		for _, r := range recent {
			exclude = append(exclude, style.Style(r))
		}
	}

	authored := s.Gabarits.Styles(spec.Chapter, spec.Kind)
	if len(authored) > 0 {
		// Pick ignores an exclusion that empties the authored pool, so a
		// gabarit is always preferred over the cache and fallback.
		return s.Selector.Pick(authored, exclude...), nil
	}
	return s.Selector.Random(exclude...), nil
}

func (s *Service) resolve(ctx context.Context, spec *mathspec.Spec, st style.Style, key string,
	values map[string]string, answers []string,
) (string, Source, error) {
	if tpl, ok := s.Gabarits.GetRandomGabarit(spec.Chapter, spec.Kind, st); ok {
		return tpl, SourceGabarit, checkLeak(SourceGabarit, tpl, answers)
	}

	if tpl, ok := s.Cache.Get(key); ok {
		return tpl, SourceCache, checkLeak(SourceCache, tpl, answers)
	}

	if s.Fallback == nil {
		return "", "", fmt.Errorf("%w for %s", ErrNoTemplate, key)
	}

	tpl, err := s.Fallback.GenerateTemplate(ctx, TemplateRequest{
		Spec:         spec,
		Style:        st,
		Directive:    style.Directive(st),
		Placeholders: slices.Sorted(maps.Keys(values)),
		Forbidden:    answers,
	})
	if err != nil {
		return "", "", fmt.Errorf("fallback for %s: %w", key, err)
	}
	tpl = strings.TrimSpace(tpl)
	if tpl == "" {
		return "", "", fmt.Errorf("fallback for %s returned an empty template", key)
	}
	if err := checkLeak(SourceFallback, tpl, answers); err != nil {
		s.log.Warn("rejected fallback template", "key", key, "error", err)
		return "", "", err
	}

	s.Cache.Set(key, tpl)
	return tpl, SourceFallback, nil
}

func solution(values, answers map[string]string) map[string]string {
	out := make(map[string]string, len(values)+len(answers))
	maps.Copy(out, values)
	maps.Copy(out, answers)
	return out
}

func checkLeak(src Source, tpl string, answers []string) error {
	var leaked []string
	for _, p := range templatecache.ExtractPlaceholders(tpl) {
		if slices.Contains(answers, p) {
			leaked = append(leaked, p)
		}
	}
	if len(leaked) > 0 {
		return &LeakError{Source: src, Placeholders: leaked}
	}
	return nil
}

// missing lists the placeholders of tpl that values does not cover.
func missing(tpl string, values map[string]string) []string {
	var out []string
	for _, p := range templatecache.ExtractPlaceholders(tpl) {
		if _, ok := values[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) record(ctx context.Context, spec *mathspec.Spec, stmt *Statement) {
	if s.History == nil {
		return
	}
	err := s.History.AppendStatement(ctx, store.StatementEventData{
		StatementID: stmt.ID,
		Chapter:     textnorm.Key(spec.Chapter),
		Kind:        textnorm.Key(spec.Kind),
		Difficulty:  spec.Difficulty,
		Style:       string(stmt.Style),
		Source:      string(stmt.Source),
		CacheKey:    stmt.CacheKey,
		Text:        stmt.Text,
		Unresolved:  len(stmt.Unresolved),
	})
	if err != nil {
		s.log.Warn("record statement event", "id", stmt.ID, "error", err)
	}
}

// Variability scores the last n statements generated for chapter and
// kind with style.VariabilityScore. Without history it returns 1.
func (s *Service) Variability(ctx context.Context, chapter, kind string, n int) (float64, error) {
	if s.History == nil {
		return 1.0, nil
	}
	events, err := s.History.RecentStatements(ctx, textnorm.Key(chapter), textnorm.Key(kind), n)
	if err != nil {
		return 0, fmt.Errorf("read statement history: %w", err)
	}
	texts := make([]string, len(events))
	for i, e := range events {
		texts[i] = e.Text
	}
	return style.VariabilityScore(texts), nil
}
