package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adf-relay/internal/common/config"
	commonerrors "adf-relay/internal/common/errors"
	"adf-relay/internal/common/logger"
)

func TestMessageBuild(t *testing.T) {
	msg := Message{
		From:           "relay@example.com",
		To:             "import@example.com",
		Subject:        "New Lead from GHL",
		Body:           "Attached: ADF export containing 1 lead(s).",
		AttachmentName: "lead_export.xml",
		Attachment:     []byte("<?xml version=\"1.0\"?><adf></adf>"),
	}

	raw := string(msg.Build())

	assert.Contains(t, raw, "From: relay@example.com\r\n")
	assert.Contains(t, raw, "To: import@example.com\r\n")
	assert.Contains(t, raw, "Subject: New Lead from GHL\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/mixed;")
	assert.Contains(t, raw, `Content-Disposition: attachment; filename="lead_export.xml"`)
	assert.Contains(t, raw, "Content-Transfer-Encoding: base64\r\n")
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString(msg.Attachment))
	assert.NotContains(t, raw, "<adf>")
}

func TestWrapBase64FoldsLongLines(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(make([]byte, 300))

	wrapped := wrapBase64(encoded)

	for _, line := range strings.Split(wrapped, "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.Equal(t, encoded, strings.ReplaceAll(wrapped, "\r\n", ""))
}

type stubSender struct {
	provider string
	err      error
	sent     []Message
}

func (s *stubSender) Provider() string { return s.provider }

func (s *stubSender) Send(ctx context.Context, msg Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func testEmailConfig() config.EmailConfig {
	cfg := config.EmailConfig{
		Provider:      "smtp",
		FromAddress:   "relay@example.com",
		ImportAddress: "import@example.com",
		Subject:       "New Lead from GHL",
	}
	cfg.SMTP.Timeout = 2000
	return cfg
}

func TestNotifierDeliversAttachment(t *testing.T) {
	sender := &stubSender{provider: "smtp"}
	n := NewNotifier(sender, testEmailConfig(), "lead_export.xml", logger.NewTestLogger(t))

	err := n.Notify(context.Background(), []byte("<adf/>"), 1)

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "relay@example.com", msg.From)
	assert.Equal(t, "import@example.com", msg.To)
	assert.Equal(t, "lead_export.xml", msg.AttachmentName)
	assert.Equal(t, []byte("<adf/>"), msg.Attachment)
	assert.Contains(t, msg.Body, "1 lead(s)")
}

func TestNotifierWrapsDeliveryFailure(t *testing.T) {
	sender := &stubSender{provider: "smtp", err: errors.New("connection refused")}
	n := NewNotifier(sender, testEmailConfig(), "lead_export.xml", logger.NewTestLogger(t))

	err := n.Notify(context.Background(), []byte("<adf/>"), 1)

	require.Error(t, err)
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeDeliveryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

type stubSESAPI struct {
	input *ses.SendRawEmailInput
	err   error
}

func (s *stubSESAPI) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSenderSendsRawMessage(t *testing.T) {
	api := &stubSESAPI{}
	sender := NewSESSenderWithAPI(api, logger.NewTestLogger(t))

	err := sender.Send(context.Background(), Message{
		From:           "relay@example.com",
		To:             "import@example.com",
		Subject:        "New Lead from GHL",
		AttachmentName: "lead_export.xml",
		Attachment:     []byte("<adf/>"),
	})

	require.NoError(t, err)
	require.NotNil(t, api.input)
	assert.Equal(t, "relay@example.com", *api.input.Source)
	assert.Equal(t, []string{"import@example.com"}, api.input.Destinations)
	assert.NotEmpty(t, api.input.RawMessage.Data)
}

func TestSESSenderPropagatesError(t *testing.T) {
	api := &stubSESAPI{err: errors.New("throttled")}
	sender := NewSESSenderWithAPI(api, logger.NewTestLogger(t))

	err := sender.Send(context.Background(), Message{From: "a@b.co", To: "c@d.co"})
	assert.Error(t, err)
}
