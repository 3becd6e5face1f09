package analyzer

import "github.com/ludo-technologies/lintreport/domain"

// CountMetrics tallies messages by type, module, symbol and path in a
// single pass. Missing or empty values are counted in the Unknown bucket.
func CountMetrics(messages []domain.Message) domain.Metrics {
	metrics := domain.NewMetrics()
	for _, msg := range messages {
		metrics.Types.Add(domain.BucketOf(msg.Type))
		metrics.Modules.Add(domain.BucketOf(msg.Module))
		metrics.Symbols.Add(domain.BucketOf(msg.Symbol))
		metrics.Paths.Add(domain.BucketOf(msg.Path))
	}
	return metrics
}
