package notification

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/frahmantamala/talento-plus/internal/core/events"
)

const welcomeSubject = "Bienvenido a TalentoPlus"

func welcomeBody(emailAddr string) string {
	return fmt.Sprintf(`<h1>Bienvenido a TalentoPlus</h1>
<p>Tu cuenta ha sido creada con el usuario <strong>%s</strong>.</p>
<p>Para ingresar usa tu número de documento como contraseña.</p>`, html.EscapeString(emailAddr))
}

// WelcomeHandler mails every newly provisioned account. Delivery is best
// effort: failures are logged and never reach the publisher.
func WelcomeHandler(sender MailSender, logger *slog.Logger) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		provisioned, ok := event.(*events.AccountProvisionedEvent)
		if !ok {
			return fmt.Errorf("unexpected event %T for %s", event, events.EventTypeAccountProvisioned)
		}

		if err := sender.Send(ctx, provisioned.Email, welcomeSubject, welcomeBody(provisioned.Email)); err != nil {
			logger.Warn("welcome mail not sent", "email", provisioned.Email, "error", err)
			return nil
		}
		logger.Info("welcome mail sent", "email", provisioned.Email)
		return nil
	}
}

// Subscribe registers the welcome mail on the bus.
func Subscribe(bus *events.EventBus, sender MailSender, logger *slog.Logger) {
	bus.Subscribe(events.EventTypeAccountProvisioned, WelcomeHandler(sender, logger))
}
