package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/frodlund/cascade/internal/config"
	"github.com/frodlund/cascade/internal/fileutil"
	"github.com/frodlund/cascade/pkg/cascade"
)

const ownerReadWrite = os.FileMode(0o600)

// Processor handles the encryption and decryption of files through a
// cascade chain.
type Processor struct {
	cfg     *config.Config
	chain   *cascade.Chain
	log     zerolog.Logger
	results chan Result
}

// NewProcessor builds the chain from the configured key specs. Chain
// readiness is awaited here so key problems surface before any file is
// touched.
func NewProcessor(cfg *config.Config, log zerolog.Logger) (*Processor, error) {
	specs, err := cfg.KeySpecs()
	if err != nil {
		return nil, err
	}

	opts := []cascade.Option{}
	if cfg.Coder != "" {
		opts = append(opts, cascade.WithCoderName(cfg.Coder))
	}

	var chain *cascade.Chain

	if len(specs) == 1 {
		if cfg.Times > 1 {
			opts = append(opts, cascade.WithTimes(cfg.Times))
		}

		chain, err = cascade.New(specs[0], opts...)
	} else {
		chain, err = cascade.NewMulti(specs, opts...)
	}

	if err != nil {
		return nil, fmt.Errorf("building chain: %w", err)
	}

	if err := chain.Ready(); err != nil {
		return nil, fmt.Errorf("preparing chain: %w", err)
	}

	return &Processor{
		cfg:     cfg,
		chain:   chain,
		log:     log,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all configured files. Returns the
// number of successfully processed files, the number of errors and the total
// output size.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				p.log.Error().Err(result.Error).Str("file", result.Input).Msg("processing failed")

				continue
			}

			processed++

			totalSize += result.OutputSize

			p.log.Info().Str("from", result.Input).Str("to", result.Output).Msg("processed")

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					p.log.Error().Err(err).Str("file", result.Input).Msg("deleting failed")
				} else {
					p.log.Info().Str("file", result.Input).Msg("deleted")
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// transform runs the crypto step on the whole file contents.
func (p *Processor) transform(data []byte) ([]byte, error) {
	switch {
	case p.cfg.Decrypt && p.cfg.Armor:
		text, err := p.chain.DecryptText(strings.TrimRight(string(data), "\r\n"))
		if err != nil {
			return nil, err
		}

		return []byte(text), nil

	case p.cfg.Decrypt:
		return p.chain.Decrypt(data)

	case p.cfg.Armor:
		text, err := p.chain.EncryptText(string(data))
		if err != nil {
			return nil, err
		}

		return append([]byte(text), '\n'), nil

	default:
		return p.chain.Encrypt(data)
	}
}

// processFile handles a single file: read, transform, atomic write.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	staged, err := fileutil.Begin(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}
	defer staged.Discard()

	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	output, err := p.transform(data)
	if err != nil {
		return 0, err
	}

	// The crypto step succeeded; only now does any byte reach the output.
	if _, err := staged.Write(output); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	perm := ownerReadWrite
	if staged.Executable() {
		perm |= 0o111
	}

	size, err := staged.Commit(perm, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path from the configured suffixes.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
