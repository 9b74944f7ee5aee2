package cascade

// settings collects the recognized construction options.
type settings struct {
	times     int
	timesSet  bool
	coder     Coder
	coderName string
}

// Option configures chain construction.
type Option func(*settings)

// WithTimes repeats a single-key chain n times: the same derived key and
// algorithm are applied n times in sequence, each with a fresh random value.
// Only valid with New; n must be a positive integer.
func WithTimes(n int) Option {
	return func(s *settings) {
		s.times = n
		s.timesSet = true
	}
}

// WithCoder supplies a custom ciphertext coder for the text entry points.
func WithCoder(coder Coder) Option {
	return func(s *settings) {
		s.coder = coder
	}
}

// WithCoderName selects a built-in coder by name (see CoderByName).
func WithCoderName(name string) Option {
	return func(s *settings) {
		s.coderName = name
	}
}

// newSettings applies opts over the defaults (times 1, base64 coder) and
// resolves the coder. Option errors surface synchronously from here.
func newSettings(opts []Option) (*settings, error) {
	set := &settings{times: 1}

	for _, opt := range opts {
		opt(set)
	}

	if set.coder == nil {
		name := set.coderName
		if name == "" {
			name = CoderBase64
		}

		coder, err := CoderByName(name)
		if err != nil {
			return nil, err
		}

		set.coder = coder
	}

	return set, nil
}
