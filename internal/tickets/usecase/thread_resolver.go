package usecase

import (
	"regexp"
	"strings"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/repository"
)

// similarityThreshold is the minimum Jaccard score for a recency match.
const similarityThreshold = 0.70

var replyPrefixPattern = regexp.MustCompile(`(?i)^(?:(?:re|res|fw|rv|fwd|aw|sv)\s*:|\[spam\])\s*`)

// NormalizeSubject strips reply, forward and spam-tag prefixes until the
// subject stops changing, so "RE: RE: Outage" and "Outage" normalize to the
// same string.
func NormalizeSubject(subject string) string {
	s := strings.TrimSpace(subject)
	for {
		stripped := strings.TrimSpace(replyPrefixPattern.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = struct{}{}
	}
	return set
}

// JaccardSimilarity compares the lowercase word sets of two subjects. An
// empty set on either side scores zero.
func JaccardSimilarity(a, b string) float64 {
	setA, setB := wordSet(a), wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for word := range setA {
		if _, ok := setB[word]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// ThreadResolver decides whether an unknown message continues an existing
// ticket. Three tiers are consulted in fixed order and the first hit wins:
// exact conversation id, reply-style subject from the same sender, then
// recent sender with a similar subject.
type ThreadResolver struct {
	tickets          repository.TicketRepository
	recentWindowDays int
}

func NewThreadResolver(tickets repository.TicketRepository, recentWindowDays int) *ThreadResolver {
	return &ThreadResolver{tickets: tickets, recentWindowDays: recentWindowDays}
}

// Resolve returns the ticket the message belongs to, or nil when it starts a
// new thread.
func (r *ThreadResolver) Resolve(msg domain.MailMessage) (*domain.Ticket, error) {
	// Tier 1: the provider's conversation id is authoritative.
	if msg.ConversationID != "" {
		ticket, err := r.tickets.GetByConversationID(msg.ConversationID)
		if err != nil {
			return nil, err
		}
		if ticket != nil {
			return ticket, nil
		}
	}

	// Tier 2: only consulted when the subject actually carried a reply or
	// forward marker.
	normalized := NormalizeSubject(msg.Subject)
	if normalized != "" && normalized != strings.TrimSpace(msg.Subject) {
		ticket, err := r.tickets.FindBySubjectAndSender(normalized, msg.FromEmail, r.recentWindowDays)
		if err != nil {
			return nil, err
		}
		if ticket != nil {
			return ticket, nil
		}
	}

	// Tier 3: recent ticket from the same sender with a similar subject.
	candidate, err := r.tickets.FindRecentBySender(msg.FromEmail, r.recentWindowDays)
	if err != nil {
		return nil, err
	}
	if candidate != nil {
		score := JaccardSimilarity(normalized, NormalizeSubject(candidate.Subject))
		if score >= similarityThreshold {
			return candidate, nil
		}
	}
	return nil, nil
}
