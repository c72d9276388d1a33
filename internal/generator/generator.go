package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// ErrTemplateNotFound is returned by Generate when the template does not
// exist. Callers treat it as "already deleted".
var ErrTemplateNotFound = errors.New("monthly template not found")

// GenerationError reports a run that failed and committed nothing. The
// template keeps its previous watermark and is retried on the next sweep.
type GenerationError struct {
	TemplateID int64
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for template %d: %v", e.TemplateID, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type templateLister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// Result describes one committed run.
type Result struct {
	TemplateID     int64
	Created        []int64
	Dates          []civil.Date
	GeneratedUntil null.Val[civil.Date]
	// Skipped is set when the watermark was already current.
	Skipped bool
}

// Summary describes a GenerateAll sweep.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
	Created   int
	FailedIDs []int64
}

type Option func(*Generator)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithLocation sets the time zone that decides which calendar day "now" is.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		g.loc = loc
	}
}

// WithConcurrency bounds how many templates GenerateAll works on at once.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

type Generator struct {
	processor   processor
	templates   templateLister
	log         logrus.FieldLogger
	clock       func() time.Time
	loc         *time.Location
	concurrency int
}

func NewGenerator(p processor, templates templateLister, log logrus.FieldLogger, opts ...Option) *Generator {
	g := &Generator{
		processor:   p,
		templates:   templates,
		log:         log,
		clock:       time.Now,
		loc:         time.Local,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today is the current calendar date in the configured zone.
func (g *Generator) Today() civil.Date {
	return civil.DateOf(g.clock().In(g.loc))
}

// Generate materializes every due month of templateID up to today or the
// template's end date and advances its watermark, all in one scope.
func (g *Generator) Generate(ctx context.Context, templateID int64) (*Result, error) {
	// A started run is never abandoned half way.
	ctx = context.WithoutCancel(ctx)

	action := &generateAction{templateID: templateID, today: g.Today()}
	err := g.processor.Process(ctx, action)
	if errors.Is(err, ErrTemplateNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, &GenerationError{TemplateID: templateID, Err: err}
	}

	if len(action.result.Created) > 0 {
		g.log.WithFields(logrus.Fields{
			"templateID":     templateID,
			"created":        len(action.result.Created),
			"generatedUntil": action.result.GeneratedUntil.GetOrZero().String(),
		}).Info("Generator.Generate.Complete")
	}
	return &action.result, nil
}

// GenerateAll runs Generate for every template. Failures are logged and
// counted; they never stop the other templates.
func (g *Generator) GenerateAll(ctx context.Context) Summary {
	ctx = context.WithoutCancel(ctx)

	ids, err := g.templates.ListIDs(ctx)
	if err != nil {
		g.log.WithError(err).Error("Generator.GenerateAll.ListError")
		return Summary{}
	}

	var (
		mu      sync.Mutex
		summary = Summary{Attempted: len(ids)}
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for _, id := range ids {
		eg.Go(func() error {
			result, err := g.Generate(egCtx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrTemplateNotFound):
				// Deleted between listing and generating.
				summary.Succeeded++
			case err != nil:
				summary.Failed++
				summary.FailedIDs = append(summary.FailedIDs, id)
				g.log.WithError(err).WithField("templateID", id).Error("Generator.GenerateAll.TemplateFailed")
			default:
				summary.Succeeded++
				summary.Created += len(result.Created)
			}
			return nil
		})
	}
	_ = eg.Wait()

	g.log.WithFields(logrus.Fields{
		"attempted": summary.Attempted,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"created":   summary.Created,
	}).Info("Generator.GenerateAll.Complete")
	return summary
}

type generateAction struct {
	templateID int64
	today      civil.Date

	result Result
	actions.IAction
}

func (a *generateAction) Perform(ctx context.Context, writer *storage.Writer) error {
	a.result = Result{TemplateID: a.templateID}

	tmpl, found, err := writer.Template.FindByID(ctx, a.templateID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTemplateNotFound
	}
	a.result.GeneratedUntil = tmpl.GeneratedUntil

	p := planRun(tmpl, a.today)
	if !p.Advance {
		a.result.Skipped = true
		return nil
	}

	for _, date := range p.Dates {
		id, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
			Name:          tmpl.Name,
			Amount:        tmpl.Amount,
			Kind:          tmpl.Kind,
			ExecutionDate: date,
			Category:      tmpl.Category,
			TemplateID:    null.From(tmpl.ID),
		})
		if err != nil {
			return fmt.Errorf("materialize %s: %w", date, err)
		}
		a.result.Created = append(a.result.Created, id)
		a.result.Dates = append(a.result.Dates, date)
	}

	if err := writer.Template.SetGeneratedUntil(ctx, tmpl.ID, p.Watermark); err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}
	a.result.GeneratedUntil = null.From(p.Watermark)
	return nil
}
