package cascade

import (
	"fmt"
	"sync"
)

// stageResult carries the outcome of one asynchronous stage construction.
type stageResult struct {
	stage *stage
	err   error
}

// Chain applies an ordered sequence of cipher stages: forward for Encrypt,
// reverse for Decrypt. Chain order is part of the effective key — only a
// chain built from the same specs in the same order can decrypt the output.
//
// Stage construction is dispatched at creation but not awaited; the first
// Encrypt, Decrypt or Ready call collapses the pending work exactly once and
// caches either the stage list or the first error, which is then replayed to
// every caller.
type Chain struct {
	pending []chan stageResult
	times   int
	coder   Coder

	once   sync.Once
	stages []*stage
	err    error
}

// New builds a chain from a single key spec. WithTimes(n) repeats the same
// stage n times (default 1). Validation errors surface synchronously, before
// any stage construction starts.
func New(spec KeySpec, opts ...Option) (*Chain, error) {
	set, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	if set.timesSet && set.times < 1 {
		return nil, fmt.Errorf("%w: %d (must be a positive integer)", ErrInvalidRepeatCount, set.times)
	}

	spec, err = spec.validate()
	if err != nil {
		return nil, err
	}

	chain := &Chain{times: set.times, coder: set.coder}
	chain.dispatch(spec)

	return chain, nil
}

// NewMulti builds a chain from an ordered list of key specs, one stage per
// entry. The list must be non-empty and WithTimes is not applicable.
func NewMulti(specs []KeySpec, opts ...Option) (*Chain, error) {
	set, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	if set.timesSet {
		return nil, fmt.Errorf("%w: repeat count cannot be combined with a key list", ErrInvalidRepeatCount)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: key list is empty", ErrMissingKeys)
	}

	validated := make([]KeySpec, len(specs))

	for i, spec := range specs {
		validated[i], err = spec.validate()
		if err != nil {
			return nil, err
		}
	}

	chain := &Chain{times: 1, coder: set.coder}
	chain.dispatch(validated...)

	return chain, nil
}

// dispatch starts stage construction for each spec without awaiting it.
func (c *Chain) dispatch(specs ...KeySpec) {
	c.pending = make([]chan stageResult, len(specs))

	for i, spec := range specs {
		ch := make(chan stageResult, 1)
		c.pending[i] = ch

		go func(spec KeySpec) {
			st, err := newStage(spec)
			ch <- stageResult{stage: st, err: err}
		}(spec)
	}
}

// Ready awaits all pending stage constructions exactly once and caches the
// outcome. It is idempotent and safe to call from concurrent goroutines: all
// callers observe the same stage list or the same captured error. Every
// Encrypt/Decrypt call invokes it implicitly; calling it ahead of time is
// harmless and lets startup errors surface early.
func (c *Chain) Ready() error {
	c.once.Do(func() {
		built := make([]*stage, 0, len(c.pending))

		for _, ch := range c.pending {
			res := <-ch
			if res.err != nil && c.err == nil {
				c.err = res.err
			}

			built = append(built, res.stage)
		}

		c.pending = nil

		if c.err != nil {
			return
		}

		if c.times > 1 {
			// Single-key mode: the one stage, repeated by reference.
			repeated := make([]*stage, c.times)
			for i := range repeated {
				repeated[i] = built[0]
			}

			built = repeated
		}

		c.stages = built
	})

	return c.err
}

// Encrypt applies every stage in order: the output of stage i, including its
// random-value prefix, becomes the input of stage i+1. Empty plaintext is
// still prefixed and encrypted at every stage.
func (c *Chain) Encrypt(plaintext []byte) ([]byte, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	data := plaintext

	for _, st := range c.stages {
		out, err := st.encrypt(data)
		if err != nil {
			return nil, err
		}

		data = out
	}

	return data, nil
}

// Decrypt undoes Encrypt by applying the stages in reverse order. Empty
// input is returned unchanged. Any stage failure aborts the whole operation;
// no partial result is returned.
func (c *Chain) Decrypt(ciphertext []byte) ([]byte, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 {
		return ciphertext, nil
	}

	data := ciphertext

	for i := len(c.stages) - 1; i >= 0; i-- {
		out, err := c.stages[i].decrypt(data)
		if err != nil {
			return nil, err
		}

		data = out
	}

	return data, nil
}

// EncryptText encrypts the UTF-8 bytes of text and encodes the result with
// the configured coder.
func (c *Chain) EncryptText(text string) (string, error) {
	blob, err := c.Encrypt([]byte(text))
	if err != nil {
		return "", err
	}

	encoded, err := c.coder.Encode(blob)
	if err != nil {
		return "", asEncodingError(err)
	}

	return encoded, nil
}

// DecryptText decodes text with the configured coder, decrypts the result
// and returns it as a string.
func (c *Chain) DecryptText(text string) (string, error) {
	blob, err := c.coder.Decode(text)
	if err != nil {
		return "", asEncodingError(err)
	}

	plain, err := c.Decrypt(blob)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}
