package ports

import (
	"context"

	"github.com/bft-labs/labelwatch/internal/domain"
)

// Printer invokes the external print command for a job.
// Implementations enforce job.Timeout and classify the outcome; they never
// touch the label file itself.
type Printer interface {
	Print(ctx context.Context, job domain.PrintJob) domain.PrintResult
}
