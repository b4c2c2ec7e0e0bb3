package stats

import "go.uber.org/zap"

// Option configures Assemble.
type Option func(*assembler)

// WithLogger logs unresolved names and duplicate records to l.
func WithLogger(l *zap.Logger) Option {
	return func(a *assembler) {
		if l != nil {
			a.log = l
		}
	}
}

// WithDomains replaces the default domain configuration table. The
// order of specs is the processing order.
func WithDomains(specs ...DomainSpec) Option {
	return func(a *assembler) {
		a.specs = specs
	}
}

type assembler struct {
	log   *zap.Logger
	specs []DomainSpec
	reg   *Registry
}

// Assemble builds the registry of communes from doc in a single pass.
//
// Records of every domain are merged under the canonical key of their
// commune: the first record seen for a key creates the commune and names
// it, later records only fill their own domain's slot. Each domain writes
// only its own slot, so the processing order of domains changes nothing
// but the display names and the order of communes.
func Assemble(doc *Document, opts ...Option) *Registry {
	a := &assembler{
		log:   zap.NewNop(),
		specs: DefaultDomains,
		reg:   newRegistry(),
	}
	for _, o := range opts {
		o(a)
	}

	for _, spec := range a.specs {
		a.add(Locate(doc, spec))
	}

	a.log.Debug("Registry assembled",
		zap.Int("communes", len(a.reg.subdivisions)),
		zap.Int("domains", len(a.specs)),
	)

	return a.reg
}

func (a *assembler) add(loc Located) {
	d := loc.Domain
	if d < 0 || int(d) >= numDomains {
		a.log.Warn("Skipping unknown domain", zap.Int("domain", int(d)))
		return
	}

	if loc.Table == nil {
		a.log.Debug("No table for domain", zap.Stringer("domain", d))
		return
	}

	if loc.Province != nil {
		a.reg.province[d] = loc.Province
	}

	seen := make(map[string]bool, len(loc.Entries))

	for _, e := range loc.Entries {
		key := NormalizeName(e.NameHint)
		if key == "" {
			a.log.Debug("Unresolved commune name",
				zap.Stringer("domain", d),
				zap.String("name", e.NameHint),
			)
			continue
		}

		if seen[key] {
			a.log.Warn("Duplicate commune record, keeping the last one",
				zap.Stringer("domain", d),
				zap.String("name", e.NameHint),
				zap.String("key", key),
			)
		}
		seen[key] = true

		s, _ := a.reg.getOrCreate(key, e.NameHint)
		s.slots[d] = e.Record
	}
}
