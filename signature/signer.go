package signature

import (
	"go.uber.org/zap"
	"mit.edu/dsg/plansig/common"
	"mit.edu/dsg/plansig/planner"
	"mit.edu/dsg/plansig/settings"
)

// Signer computes plan and settings signatures against one catalog and one
// set of engine settings. A Signer holds no per-call state and may be shared
// by any number of goroutines; each call builds its signature in a buffer of
// its own.
type Signer struct {
	resolver *NameResolver
	values   *settings.Values
	logger   *zap.Logger
}

type signerOptions struct {
	hook   IndexNameHook
	logger *zap.Logger
}

// Option configures a Signer.
type Option func(*signerOptions)

// WithIndexNameHook installs a hook that names indexes ahead of the catalog.
func WithIndexNameHook(hook IndexNameHook) Option {
	return func(o *signerOptions) { o.hook = hook }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *signerOptions) { o.logger = logger }
}

func NewSigner(catalog RelNameLookup, sv *settings.Values, opts ...Option) *Signer {
	var o signerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if sv == nil {
		sv = settings.NewValues()
	}
	return &Signer{
		resolver: NewNameResolver(catalog, o.hook, o.logger),
		values:   sv,
		logger:   o.logger,
	}
}

// PlanSignature returns the signature of stmt's plan tree.
func (s *Signer) PlanSignature(stmt *planner.PlannedStmt) (string, error) {
	if stmt == nil {
		return "", nil
	}
	sig, err := ComputePlanSignature(stmt.RangeTable, stmt.Root, s.resolver)
	if err != nil {
		s.logger.Error("plan signature failed", zap.Error(err))
		return "", err
	}
	if ce := s.logger.Check(zap.DebugLevel, "computed plan signature"); ce != nil {
		nodes := 0
		_ = planner.Walk(stmt.Root, func(planner.PlanNode) error { nodes++; return nil })
		ce.Write(zap.Int("nodes", nodes), zap.String("signature", sig))
	}
	return sig, nil
}

// SettingsSignature returns the signature of the current engine settings.
func (s *Signer) SettingsSignature() string {
	return ComputeSettingsSignature(s.values)
}

// Key identifies one (query, plan, settings) combination, e.g. to cache what
// executing that plan produced.
type Key struct {
	Query    string
	Plan     string
	Settings string
}

// Key builds the Key of running stmt for the (normalized) query text under the
// current settings.
func (s *Signer) Key(query string, stmt *planner.PlannedStmt) (Key, error) {
	plan, err := s.PlanSignature(stmt)
	if err != nil {
		return Key{}, err
	}
	return Key{Query: query, Plan: plan, Settings: s.SettingsSignature()}, nil
}

// String joins the three parts with newlines. Plan and settings signatures
// never contain a newline.
func (k Key) String() string {
	return k.Query + "\n" + k.Plan + "\n" + k.Settings
}

// Fingerprint is the 64-bit FNV-1a hash of String.
func (k Key) Fingerprint() uint64 {
	return common.HashString(k.String())
}
