package qsim

// Config carries sampling defaults.
type Config struct {
	Shots   int   // shot count used by Sampler.Sample
	Seed    int64 // RNG seed; 0 seeds from the wall clock
	Workers int   // concurrent sampling workers; 1 runs sequentially
}

func NewConfig() *Config {
	return &Config{
		Shots:   1024,
		Workers: 1,
	}
}
