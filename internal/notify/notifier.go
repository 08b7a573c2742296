// Define the notifier interface all delivery channels implement.
// Each posting's outcome must be individually observable, no internal
// batching.

package notify

import (
	"context"

	"go-jobwatch-agent/internal/models"
)

type Notifier interface {
	//Send delivers one posting alert
	Send(ctx context.Context, p models.Posting) error

	//Name is the channel name (Discord, Telegram, ...)
	Name() string
}
