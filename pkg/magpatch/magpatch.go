// Package magpatch provides the public Go API for patching a host item
// database from the magpatch configuration file.
//
// Basic usage:
//
//	result, err := magpatch.Run(ctx, magpatch.Options{
//	    Provider: database.Open("/srv/game/database"),
//	    Logger:   logging.New(logging.Config{}),
//	})
//	fmt.Println(result.Variables["SpeedOverrides"]) // "42"
package magpatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/logging"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/output"
)

// ErrDependency is returned when a collaborator the run cannot do without
// was not supplied.
var ErrDependency = errors.New("required dependency unavailable")

// Options configures a run.
type Options struct {
	// ConfigPath is the configuration file. Defaults to config.DefaultPath.
	ConfigPath string

	// Provider gives access to the host tables (required by Run).
	Provider catalog.TablesProvider

	// Logger receives progress and correction messages (required).
	Logger *logging.Logger

	// Retry bounds the wait for the host tables. The zero value means
	// catalog.DefaultRetryPolicy.
	Retry catalog.RetryPolicy

	// DryRun skips writing the corrected configuration back to disk.
	DryRun bool

	// FixedVerbosity keeps the logger's verbosity instead of following the
	// configuration's debug key.
	FixedVerbosity bool

	// Explain populates Result.Explanation.
	Explain bool
}

// Result is the outcome of a run.
type Result struct {
	// Config is the validated configuration used for patching.
	Config config.Config

	// Corrections lists every field Validate replaced.
	Corrections []config.Correction

	// ConfigPath is the configuration file that was read.
	ConfigPath string

	// ConfigCreated is true when the file was missing and defaults were written.
	ConfigCreated bool

	// WroteBack is true when the corrected configuration was persisted.
	WroteBack bool

	// Report describes the patches applied. Nil for Validate.
	Report *catalog.Report

	// Tables is the patched host database. Nil for Validate.
	Tables *catalog.Tables

	// Variables flattens the result into name/value pairs.
	Variables map[string]string

	// Explanation is the human-readable account of the run. Empty unless
	// Options.Explain is set.
	Explanation string
}

// Summary returns the rendering view of r.
func (r *Result) Summary() output.Summary {
	return output.Summary{
		Config:        r.Config,
		Corrections:   r.Corrections,
		ConfigPath:    r.ConfigPath,
		ConfigCreated: r.ConfigCreated,
		WroteBack:     r.WroteBack,
		Report:        r.Report,
	}
}

// Run loads and validates the configuration, persists any corrections,
// waits for the host tables and applies the patches. Fatal conditions are
// logged at error level and returned; a failed write-back is logged and the
// corrected configuration is still used.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrDependency)
	}
	log := opts.Logger
	if opts.Provider == nil {
		err := fmt.Errorf("%w: item database", ErrDependency)
		log.Error().Err(err).Msg("cannot start")
		return nil, err
	}

	result, err := loadAndValidate(opts)
	if err != nil {
		return nil, err
	}

	policy := opts.Retry
	if policy.Attempts == 0 && policy.Delay == 0 {
		policy = catalog.DefaultRetryPolicy
	}
	tables, err := catalog.WaitForTables(ctx, opts.Provider, policy)
	if err != nil {
		log.Error().Err(err).Msg("item database not available, nothing patched")
		return nil, err
	}

	report := catalog.NewMutator(result.Config, log.WithComponent("catalog")).Apply(tables)
	result.Report = &report
	result.Tables = tables
	log.Success().Int("magazines", report.Magazines).Msg("patches applied")

	finish(result, opts)
	return result, nil
}

// Validate loads and validates the configuration and persists any
// corrections, without touching the host tables.
func Validate(opts Options) (*Result, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrDependency)
	}
	result, err := loadAndValidate(opts)
	if err != nil {
		return nil, err
	}
	finish(result, opts)
	return result, nil
}

func loadAndValidate(opts Options) (*Result, error) {
	log := opts.Logger
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}

	loaded, err := config.Load(path)
	if err != nil {
		log.Error().Err(err).Msg("configuration not loaded, nothing patched")
		return nil, err
	}
	if loaded.Created {
		log.Info().Str("path", path).Msg("configuration not found, created with defaults")
	}

	vr := config.Validate(loaded.Document, loaded.Created)
	for _, c := range vr.Corrections {
		log.Warn().Str("key", c.Key).Msg(c.String())
	}

	result := &Result{
		Config:        vr.Config,
		Corrections:   vr.Corrections,
		ConfigPath:    path,
		ConfigCreated: loaded.Created,
	}

	if vr.NeedsWriteBack && !opts.DryRun {
		if err := writeBack(path, loaded.Document); err != nil {
			log.Error().Err(err).Msg("corrected configuration not saved, continuing with corrected values")
		} else {
			result.WroteBack = true
			log.Info().Str("path", path).Int("corrections", len(vr.Corrections)).Msg("corrected configuration saved")
		}
	}

	if !opts.FixedVerbosity {
		log.SetDebug(vr.Config.Debug)
	}
	log.Debug().Interface("config", vr.Config).Msg("effective configuration")
	return result, nil
}

// saveConfig persists a corrected document; replaced in tests.
var saveConfig = config.Save

func writeBack(path string, doc config.Document) error {
	if err := saveConfig(path, doc); err != nil {
		return &config.WriteBackError{Path: path, Err: err}
	}
	return nil
}

func finish(r *Result, opts Options) {
	s := r.Summary()
	r.Variables = output.GetVariables(s)
	if opts.Explain {
		r.Explanation = output.FormatExplanation(s)
	}
}
