// Package mailer delivers the rendered ADF document to the dealership import
// mailbox as an email attachment. Delivery is best effort; callers log a
// failure and move on.
package mailer

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Message is one outbound import email with a single XML attachment.
type Message struct {
	From           string
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// Build renders the full RFC 5322 message with a multipart/mixed MIME body
// and the attachment base64 encoded.
func (m Message) Build() []byte {
	boundary := "relay-" + uuid.NewString()

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", m.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", m.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", m.Subject))
	builder.WriteString(fmt.Sprintf("Message-ID: <%s@adf-relay>\r\n", uuid.NewString()))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary))
	builder.WriteString("\r\n")

	builder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(m.Body)
	builder.WriteString("\r\n")

	builder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	builder.WriteString(fmt.Sprintf("Content-Type: application/xml; charset=UTF-8; name=\"%s\"\r\n", m.AttachmentName))
	builder.WriteString("Content-Transfer-Encoding: base64\r\n")
	builder.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", m.AttachmentName))
	builder.WriteString("\r\n")
	builder.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(m.Attachment)))
	builder.WriteString("\r\n")

	builder.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(builder.String())
}

// wrapBase64 folds the encoded attachment at the 76-column MIME limit.
func wrapBase64(encoded string) string {
	const lineLength = 76

	var builder strings.Builder
	for len(encoded) > lineLength {
		builder.WriteString(encoded[:lineLength])
		builder.WriteString("\r\n")
		encoded = encoded[lineLength:]
	}
	builder.WriteString(encoded)
	return builder.String()
}
