package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"studentenfutter/internal/domain"
	"studentenfutter/internal/locale"
)

type Skill struct {
	menu     MenuSource
	catalog  *locale.Catalog
	notifier Notifier
	recorder InvocationRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewSkill(
	menu MenuSource,
	catalog *locale.Catalog,
	notifier Notifier,
	recorder InvocationRecorder,
	logger *slog.Logger,
) *Skill {
	return &Skill{
		menu:     menu,
		catalog:  catalog,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle routes one request to its handler and returns what to speak.
func (s *Skill) Handle(ctx context.Context, req domain.Request) domain.Response {
	t := s.catalog.Translator(req.Locale)
	inv := domain.Invocation{
		RequestID: req.ID,
		Locale:    s.catalog.Resolve(req.Locale),
		Name:      req.Name(),
		Outcome:   domain.OutcomeStatic,
	}

	var resp domain.Response

	switch req.Name() {
	case string(domain.RequestTypeLaunch), string(domain.IntentTodaysLunch):
		resp = s.todaysLunches(ctx, t, &inv)

	case string(domain.IntentHelp):
		s.logger.Info("help requested", "request_id", req.ID)
		resp = domain.Ask(t(locale.KeyHelpMessage), t(locale.KeyHelpReprompt))

	case string(domain.IntentCancel), string(domain.IntentStop):
		s.logger.Info("intent stopped", "request_id", req.ID, "intent", req.Intent)
		resp = domain.Tell(t(locale.KeyStopMessage))

	case string(domain.RequestTypeSessionEnded):
		resp = domain.Tell(t(locale.KeyStopMessage))

	default:
		s.logger.Warn("unhandled request, answering with help", "request_id", req.ID, "name", req.Name())
		resp = domain.Ask(t(locale.KeyHelpMessage), t(locale.KeyHelpReprompt))
	}

	inv.HandledAt = s.now().UTC()
	if err := s.recorder.Record(ctx, inv); err != nil {
		s.logger.Error("recording invocation", "request_id", req.ID, "error", err)
	}

	return resp
}

func (s *Skill) todaysLunches(ctx context.Context, t locale.Translator, inv *domain.Invocation) domain.Response {
	items, err := s.menu.TodayMenu(ctx)
	if err != nil {
		s.logger.Error("fetching today's menu", "request_id", inv.RequestID, "error", err)

		inv.Outcome = domain.OutcomeUnavailable
		inv.Error = err.Error()

		if notifyErr := s.notifier.Notify(ctx, fmt.Sprintf("Menu unavailable: %s", err.Error())); notifyErr != nil {
			s.logger.Error("notifying outage", "error", notifyErr)
		}

		return domain.Tell(ClosedMessage(t))
	}

	inv.DishCount = len(domain.MainDishes(items))
	if inv.DishCount == 0 {
		inv.Outcome = domain.OutcomeClosed
	} else {
		inv.Outcome = domain.OutcomeServed
	}

	s.logger.Info("menu fetched",
		"request_id", inv.RequestID,
		"items", len(items),
		"main_dishes", inv.DishCount,
	)

	return domain.Tell(FormatTodayLunches(items, t))
}
