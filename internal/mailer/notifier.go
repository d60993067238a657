package mailer

import (
	"context"
	"fmt"
	"time"

	"adf-relay/internal/common/config"
	commonerrors "adf-relay/internal/common/errors"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/common/metrics"
)

// Sender is one delivery backend. Both implementations accept the same
// message and report a plain error.
type Sender interface {
	Provider() string
	Send(ctx context.Context, msg Message) error
}

// Notifier wraps a Sender with the import-mailbox addressing, a bounded
// timeout, and delivery metrics.
type Notifier struct {
	sender         Sender
	cfg            config.EmailConfig
	attachmentName string
	timeout        time.Duration
	log            logger.Logger
}

func NewNotifier(sender Sender, cfg config.EmailConfig, attachmentName string, log logger.Logger) *Notifier {
	timeout := config.GetDuration(cfg.SMTP.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Notifier{
		sender:         sender,
		cfg:            cfg,
		attachmentName: attachmentName,
		timeout:        timeout,
		log:            log,
	}
}

// Notify emails the document to the import address. A DELIVERY_FAILED error
// is returned for the caller to log; delivery failure never fails the lead.
func (n *Notifier) Notify(ctx context.Context, document []byte, leadCount int) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := Message{
		From:           n.cfg.FromAddress,
		To:             n.cfg.ImportAddress,
		Subject:        n.cfg.Subject,
		Body:           fmt.Sprintf("Attached: ADF export containing %d lead(s).", leadCount),
		AttachmentName: n.attachmentName,
		Attachment:     document,
	}

	provider := n.sender.Provider()
	if err := n.sender.Send(sendCtx, msg); err != nil {
		metrics.EmailsFailed.WithLabelValues(provider).Inc()
		return commonerrors.NewDeliveryFailedError(provider, err)
	}

	metrics.EmailsSent.WithLabelValues(provider).Inc()
	n.log.Info("Import email delivered", map[string]interface{}{
		"provider":  provider,
		"to":        n.cfg.ImportAddress,
		"leadCount": leadCount,
	})
	return nil
}
