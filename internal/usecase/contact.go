package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dental-smile-backend/internal/domain"
	"dental-smile-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// ContactOptions tunes message rendering and delivery.
type ContactOptions struct {
	SiteName       string
	ChannelTimeout time.Duration
	Location       *time.Location
	Logger         *slog.Logger
	Now            func() time.Time
}

type contactUsecase struct {
	emailSender  domain.EmailSender
	chatNotifier domain.ChatNotifier
	validate     *validator.Validate
	site         string
	timeout      time.Duration
	location     *time.Location
	logger       *slog.Logger
	now          func() time.Time
}

// NewContactUsecase creates the submission dispatcher
func NewContactUsecase(emailSender domain.EmailSender, chatNotifier domain.ChatNotifier, validate *validator.Validate, opts ContactOptions) domain.ContactUsecase {
	uc := &contactUsecase{
		emailSender:  emailSender,
		chatNotifier: chatNotifier,
		validate:     validate,
		site:         opts.SiteName,
		timeout:      opts.ChannelTimeout,
		location:     opts.Location,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if uc.validate == nil {
		uc.validate = validation.New()
	}
	if uc.timeout <= 0 {
		uc.timeout = 10 * time.Second
	}
	if uc.location == nil {
		uc.location = time.UTC
	}
	if uc.logger == nil {
		uc.logger = slog.Default()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// SubmitContact validates the submission, then attempts both channels
// concurrently and waits for both regardless of individual failures.
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest) (domain.DispatchOutcome, error) {
	if req == nil {
		return domain.DispatchOutcome{}, domain.ErrValidation
	}
	if err := uc.validate.Struct(req); err != nil {
		uc.logger.Info("contact submission rejected", "missing", validation.MissingFields(err))
		return domain.DispatchOutcome{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	uc.logger.Info("new contact form submission",
		"name", strings.TrimSpace(req.Name),
		"phone", strings.TrimSpace(req.Phone),
		"email", req.Email,
		"service", req.Service,
	)

	view := newMessageView(uc.site, req, uc.now().In(uc.location))

	// A client hanging up must not abort deliveries already under way.
	ctx = context.WithoutCancel(ctx)

	var emailSent, chatSent bool
	var g errgroup.Group
	g.Go(func() error {
		emailSent = uc.deliver(ctx, domain.ChannelEmail, func(ctx context.Context) error {
			msg, err := renderEmail(view)
			if err != nil {
				return err
			}
			return uc.emailSender.Send(ctx, msg)
		})
		return nil
	})
	g.Go(func() error {
		chatSent = uc.deliver(ctx, domain.ChannelTelegram, func(ctx context.Context) error {
			text, err := renderChat(view)
			if err != nil {
				return err
			}
			return uc.chatNotifier.Notify(ctx, text)
		})
		return nil
	})
	_ = g.Wait()

	outcome := domain.DispatchOutcome{
		EmailSent:      emailSent,
		ChatSent:       chatSent,
		OverallSuccess: emailSent || chatSent,
	}
	uc.logger.Info("contact submission dispatched",
		"email_sent", outcome.EmailSent,
		"telegram_sent", outcome.ChatSent,
	)

	if !outcome.OverallSuccess {
		return outcome, domain.ErrDeliveryFailed
	}
	return outcome, nil
}

// deliver runs one channel under its own timeout and folds any error or panic
// into false. The cause only reaches the log.
func (uc *contactUsecase) deliver(ctx context.Context, channel string, send func(context.Context) error) (delivered bool) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("notification channel panicked", "channel", channel, "panic", fmt.Sprint(r))
			delivered = false
		}
	}()

	if err := send(ctx); err != nil {
		uc.logger.Error("notification delivery failed",
			"channel", channel,
			"error", &domain.DeliveryError{Channel: channel, Err: err},
			"duration", time.Since(start),
		)
		return false
	}

	uc.logger.Debug("notification delivered", "channel", channel, "duration", time.Since(start))
	return true
}
