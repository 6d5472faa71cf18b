package usecase

import (
	"strings"

	"helpdesk-backend/internal/tickets/domain"
)

// SpamFilter drops messages from well-known automated senders and messages
// the mail gateway already tagged in the subject line.
type SpamFilter struct {
	senderPrefixes []string
	subjectMarkers []string
}

func NewSpamFilter(senderPrefixes, subjectMarkers []string) *SpamFilter {
	f := &SpamFilter{}
	for _, p := range senderPrefixes {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			f.senderPrefixes = append(f.senderPrefixes, p)
		}
	}
	for _, m := range subjectMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			f.subjectMarkers = append(f.subjectMarkers, m)
		}
	}
	return f
}

// IsSpam checks the sender's local part against the configured prefixes and
// the start of the subject against the configured markers, both
// case-insensitively. A marker mentioned mid-subject does not count.
func (f *SpamFilter) IsSpam(msg domain.MailMessage) bool {
	local := msg.FromEmail
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}
	local = strings.ToLower(local)
	for _, prefix := range f.senderPrefixes {
		if strings.HasPrefix(local, prefix) {
			return true
		}
	}

	subject := strings.ToLower(strings.TrimSpace(msg.Subject))
	for _, marker := range f.subjectMarkers {
		if strings.HasPrefix(subject, marker) {
			return true
		}
	}
	return false
}
