package observability

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Snapshot renders every registered collector in Prometheus text exposition
// format. Used by the `scheduler metrics` CLI command in place of an HTTP
// /metrics endpoint, which is out of scope (§1).
func Snapshot() (string, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}
