package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/stratiq/internal/application"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/domain/history"
	domain "github.com/bryanwahyu/stratiq/internal/domain/wizard"
)

// Service implements use-cases untuk wizard session.
// Dispatches on the same session id are serialized; different sessions run concurrently.
type Service struct {
	Store    domain.SessionStore
	Selector *Selector
	Deck     analysis.DeckBuilder // optional, required for deck/html exports
	Archive  analysis.Archive     // optional
	History  history.Repository   // optional
	Clock    application.Clock
	Log      *zap.Logger
	// AITimeout bounds every generator call when > 0.
	AITimeout time.Duration
	// SessionTTL is how long an idle session's generator stays cached; 0 keeps it forever.
	SessionTTL time.Duration

	locks keyedMutex
	gens  generatorCache
}

//
// ==== USE CASES ====
//

// Start creates a new session at the inputs step.
func (s *Service) Start(ctx context.Context, offline bool) (domain.Session, error) {
	sess := domain.NewSession(uuid.NewString(), offline, s.now())
	s.selectGenerator(&sess)
	if err := s.Store.Save(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.log().Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("analysis_id", sess.Record.ID),
		zap.String("mode", sess.Mode),
	)
	return sess, nil
}

// Get ambil 1 session by id
func (s *Service) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.load(ctx, id)
}

// Dispatch applies one user event, runs the resulting effects and persists
// the outcome. Validation failures are returned and also attached as an error
// notice; generation failures are persisted and returned wrapped in
// analysis.ErrGeneration.
func (s *Service) Dispatch(ctx context.Context, id string, ev domain.Event) (domain.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	sess.ClearNotices()

	sess, runErr := s.apply(ctx, sess, ev)
	if runErr != nil && domain.IsValidation(runErr) {
		sess.Notify(domain.NoticeError, validationMessage(runErr))
	}
	s.selectGenerator(&sess)
	sess.UpdatedAt = s.now()

	if err := s.Store.Save(ctx, sess); err != nil {
		return sess, fmt.Errorf("save session: %w", err)
	}
	return sess, runErr
}

// Export builds the file for format, archives it when an archive is
// configured and records the export on the session. Only allowed at the
// export step.
func (s *Service) Export(ctx context.Context, id string, format analysis.ExportFormat) (*analysis.File, domain.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.Session{}, err
	}
	sess.ClearNotices()

	sess, err = s.apply(ctx, sess, domain.ChooseExport{Format: format})
	if err != nil {
		return nil, sess, err
	}

	now := s.now()
	file, err := s.build(ctx, sess.Record, format, now)
	if err != nil {
		return nil, sess, err
	}

	location := file.Filename
	if s.Archive != nil {
		url, err := s.Archive.Put(ctx, ExportKey(sess.Record.ID, file.Filename), file)
		if err != nil {
			// archiving is best effort, the download still succeeds
			s.log().Warn("export archive failed", zap.String("session_id", id), zap.Error(err))
		} else {
			location = url
		}
	}

	sess, err = s.apply(ctx, sess, domain.ExportCompleted{Format: format, Path: location})
	if err != nil {
		return nil, sess, err
	}
	s.selectGenerator(&sess)
	sess.UpdatedAt = now
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, sess, fmt.Errorf("save session: %w", err)
	}

	s.record(ctx, sess, history.Entry{
		Kind:     history.KindExport,
		Format:   string(format),
		Location: location,
	})
	s.log().Info("export completed",
		zap.String("session_id", id),
		zap.String("format", string(format)),
		zap.String("filename", file.Filename),
		zap.Int("bytes", len(file.Data)),
		zap.String("location", location),
	)
	return file, sess, nil
}

// ListHistory lists the audit entries of a session, newest first.
func (s *Service) ListHistory(ctx context.Context, id string, limit int) ([]*history.Entry, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if s.History == nil {
		return []*history.Entry{}, nil
	}
	return s.History.ListBySession(ctx, id, limit)
}

// ExportKey is the archive object key of an exported file.
func ExportKey(analysisID, filename string) string {
	return fmt.Sprintf("exports/%s/%s", analysisID, filename)
}

// apply reduces ev and every follow-up event produced by its effects.
func (s *Service) apply(ctx context.Context, sess domain.Session, ev domain.Event) (domain.Session, error) {
	queue := []domain.Event{ev}
	var surfaced error
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		next, effects, err := domain.Reduce(sess, cur)
		if err != nil {
			return sess, err
		}
		sess = next

		for _, eff := range effects {
			out, err := s.execute(ctx, &sess, eff)
			if err != nil && surfaced == nil {
				surfaced = err
			}
			if out != nil {
				queue = append(queue, out)
			}
		}
	}
	return sess, surfaced
}

// execute runs one effect and translates its outcome into an event.
func (s *Service) execute(ctx context.Context, sess *domain.Session, eff domain.Effect) (domain.Event, error) {
	gen := s.selectGenerator(sess)

	switch e := eff.(type) {
	case domain.SuggestScope:
		ctx, cancel := withBudget(ctx, s.AITimeout)
		defer cancel()
		scope, err := gen.SuggestScope(ctx, e.Company)
		if err != nil {
			s.log().Info("scope suggestion skipped", zap.String("session_id", sess.ID), zap.Error(err))
			return domain.ScopeSuggestionFailed{Reason: err.Error()}, nil
		}
		return domain.ScopeSuggested{Company: e.Company, Scope: scope}, nil

	case domain.GenerateAnalysis:
		ctx, cancel := withBudget(ctx, GenerationBudget(s.AITimeout, len(e.Request.Frameworks)))
		defer cancel()
		return s.generate(ctx, sess, gen, e.Request)
	}
	return nil, fmt.Errorf("unknown effect %T", eff)
}

// generate runs both generator calls; either failing aborts with no mutation.
func (s *Service) generate(ctx context.Context, sess *domain.Session, gen analysis.Generator, req analysis.FrameworkRequest) (domain.Event, error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("session_id", sess.ID),
		zap.String("mode", sess.Mode),
		zap.Int("frameworks", len(req.Frameworks)),
	}
	s.log().Info("generation started", fields...)

	generated, err := gen.GenerateFrameworks(ctx, req)
	var recs []analysis.Recommendation
	if err == nil {
		recs, err = gen.GenerateRecommendations(ctx, sess.Record.Results.Merge(generated))
	}
	if err != nil {
		s.log().Error("generation failed", append(fields, zap.Error(err))...)
		s.record(ctx, *sess, history.Entry{Kind: history.KindGenerationFailed, Message: err.Error()})
		return domain.GenerationFailed{Reason: err.Error()}, fmt.Errorf("%w: %w", analysis.ErrGeneration, err)
	}

	s.log().Info("generation finished", append(fields,
		zap.Int("recommendations", len(recs)),
		zap.Duration("duration", time.Since(start)),
	)...)
	return domain.GenerationSucceeded{Generated: generated, Recs: recs}, nil
}

// selectGenerator resolves the cached generator for the session's offline
// flag and records the active mode on the session.
func (s *Service) selectGenerator(sess *domain.Session) analysis.Generator {
	sel, fresh := s.gens.resolve(sess.ID, sess.Offline, s.Selector, s.now(), s.SessionTTL)
	if fresh {
		s.log().Info("generator selected",
			zap.String("session_id", sess.ID),
			zap.Bool("offline", sess.Offline),
			zap.String("mode", sel.Mode),
		)
		if sel.Notice != "" {
			sess.Notify(domain.NoticeInfo, sel.Notice)
		}
	}
	sess.Mode = sel.Mode
	return sel.Generator
}

// load reads a session and forgets the cached generator of expired ones.
func (s *Service) load(ctx context.Context, id string) (domain.Session, error) {
	sess, err := s.Store.Get(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.gens.evict(id)
	}
	return sess, err
}

func (s *Service) build(ctx context.Context, rec analysis.Record, format analysis.ExportFormat, now time.Time) (*analysis.File, error) {
	switch format {
	case analysis.ExportJSON:
		return analysis.BuildJSONExport(rec, now)
	case analysis.ExportDeck, analysis.ExportHTML:
		if s.Deck == nil {
			return nil, fmt.Errorf("%w: %s (deck builder not configured)", analysis.ErrUnsupportedFormat, format)
		}
		return s.Deck.Build(ctx, rec, format)
	}
	return nil, fmt.Errorf("%w: %q", analysis.ErrUnsupportedFormat, format)
}

func (s *Service) record(ctx context.Context, sess domain.Session, e history.Entry) {
	if s.History == nil {
		return
	}
	e.SessionID = sess.ID
	e.AnalysisID = sess.Record.ID
	e.CreatedAt = s.now()
	if err := s.History.Save(ctx, &e); err != nil {
		s.log().Warn("history save failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// GenerationBudget is the deadline of one analysis run: one AI timeout per
// framework plus one for the recommendations call. Zero means unbounded.
func GenerationBudget(aiTimeout time.Duration, frameworks int) time.Duration {
	if aiTimeout <= 0 {
		return 0
	}
	if frameworks < 1 {
		frameworks = 1
	}
	return aiTimeout * time.Duration(frameworks+1)
}

func withBudget(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s *Service) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
