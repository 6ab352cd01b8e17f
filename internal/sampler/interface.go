package sampler

// Sampler reads one OS data source and summarizes it as a single
// human-readable line. Implementations are stateless; two calls with
// unchanged OS state produce the same summary.
type Sampler interface {
	Sample() (string, error)
}
