package engine

import "github.com/leengari/relalg/internal/domain/schema"

// maxNameAttempts bounds how many generated names are skipped before
// the last one is handed out anyway; registration rejects it if taken
const maxNameAttempts = 16

// catalogNames draws result names from gen, skipping names already
// present in the catalog
type catalogNames struct {
	gen schema.NameGenerator
	eng *Engine
}

func (c *catalogNames) Next(base string) string {
	name := c.gen.Next(base)
	for i := 1; i < maxNameAttempts; i++ {
		if _, taken := c.eng.Table(name); !taken {
			return name
		}
		name = c.gen.Next(base)
	}
	return name
}
