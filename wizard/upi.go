package wizard

import (
	"fmt"
	"net/url"
	"strings"
)

// PaymentLink builds the UPI deep link shown on the payment step, both as a
// clickable link and as the QR payload. The transaction note interpolates
// the team and tournament names and is percent-encoded in full; spaces
// become %20 so the note survives every UPI app's parser.
func PaymentLink(payeeAddress, payeeName string, entryFee int, teamName, tournamentName string) string {
	note := fmt.Sprintf("Entry Fee for %s in %s", teamName, tournamentName)
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=INR&tn=%s",
		payeeAddress,
		encodeComponent(payeeName),
		entryFee,
		encodeComponent(note),
	)
}

// encodeComponent mirrors JavaScript's encodeURIComponent for the subset of
// inputs we interpolate: query escaping with %20 instead of '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
