package notify

import (
	"github.com/google/uuid"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

var requestNamespace = uuid.MustParse("6f3c2a9e-4d1b-5c8e-9a7f-2b6d0e1c3f45")

// RequestID derives a name-based UUID from kind and subject, so the same subject and kind
// always map to the same dispatcher identifier.
func RequestID(kind domain.NotificationKind, subjectID string) string {
	return uuid.NewSHA1(requestNamespace, []byte(kind.String()+":"+subjectID)).String()
}

func pickVariant(requestID string, variants []string) string {
	u, err := uuid.Parse(requestID)
	if err != nil {
		return variants[0]
	}
	return variants[int(u[0])%len(variants)]
}
