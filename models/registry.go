package models

import "github.com/cockroachdb/errors"

// Registry resolves relationship targets by name. It is populated once at
// startup and read-only afterwards, so it is safe to share across requests.
type Registry map[string]EntityDescriptor

func NewRegistry(descriptors ...EntityDescriptor) Registry {
	reg := make(Registry, len(descriptors))
	for _, d := range descriptors {
		reg[d.Name] = d
	}
	return reg
}

func (r Registry) Get(name string) (EntityDescriptor, bool) {
	d, ok := r[name]
	return d, ok
}

// Validate checks that every declared relationship points at a registered
// descriptor and carries the join keys its cardinality requires. Called once
// at startup so a bad declaration fails fast instead of silently dropping
// filters at request time.
func (r Registry) Validate() error {
	for name, desc := range r {
		for relName, rel := range desc.Relationships {
			target, ok := r[rel.Target]
			if !ok {
				return errors.Newf("entity %s: relationship %s targets unknown entity %s",
					name, relName, rel.Target)
			}
			switch rel.Kind {
			case ManyToOne, OneToMany:
				if rel.ForeignKey == "" {
					return errors.Newf("entity %s: relationship %s is missing its foreign key",
						name, relName)
				}
				// the joining column lives on this table for many-to-one,
				// on the target's table for one-to-many
				holder := desc
				if rel.Kind == OneToMany {
					holder = target
				}
				if !holder.HasColumn(rel.ForeignKey) {
					return errors.Newf("entity %s: relationship %s foreign key %s is not a declared column of %s",
						name, relName, rel.ForeignKey, holder.Name)
				}
			case ManyToMany:
				if rel.LinkTable == "" || rel.LinkOwnerKey == "" || rel.LinkTargetKey == "" {
					return errors.Newf("entity %s: relationship %s is missing its link table declaration",
						name, relName)
				}
			}
		}
	}
	return nil
}
