package sockettransport

import "time"

// RedialBackoffSequence returns the first n redial wait periods under cfg.
func RedialBackoffSequence(cfg Config, n int) (seq []time.Duration) {
	cfg.applyDefaults()
	b := cfg.newBackoff()
	for i := 0; i < n; i++ {
		seq = append(seq, b.NextBackOff())
	}
	return seq
}
