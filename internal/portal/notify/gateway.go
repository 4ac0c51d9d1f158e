// Package notify defines the outbound notification contract and the HTTP
// client for the mail-relay service. The core only ever needs a yes/no
// delivery outcome; everything about the actual mail transport lives behind
// the relay endpoint.
package notify

import "context"

// Gateway delivers a notification to a destination address through an
// out-of-band channel. Implementations must honor ctx cancellation and
// return within the caller's deadline.
type Gateway interface {
	Deliver(ctx context.Context, destination, subject, htmlBody string) error
}
