package mailer

import (
	"context"
	"time"

	"github.com/spacezone/backend/internal/logging"
	"github.com/spacezone/backend/internal/mykafka"
)

// Mailer hands email delivery to the out-of-process task queue. Requests
// never wait on delivery; a failed publish is logged and dropped.
type Mailer struct {
	Producer mykafka.Publisher
	Topic    string
}

type emailTask struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}

func (m *Mailer) Send(ctx context.Context, subject, body string, recipients ...string) {
	if m.Producer == nil || len(recipients) == 0 {
		return
	}

	task := emailTask{Subject: subject, Body: body, Recipients: recipients}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := m.Producer.PublishEvent(publishCtx, m.Topic, recipients[0], task); err != nil {
		logging.FromContext(ctx).Error("email task publish failed", "error", err, "subject", subject)
	}
}
