// Package ports defines the interfaces the comparison engine's collaborators
// implement. Adapters depend on this package, never the reverse.
package ports

import (
	"driftlens/domain/dataset"
	"driftlens/domain/drift"
)

// Reporter turns a result table into a visual artifact. Implementations
// render one bar per analyzed field (height = probability), a neutral
// "not computed" indicator for fields absent from the table but not ignored,
// and must distinguish drift rows visually. The descriptor slice carries the
// full non-ignored field set so the reporter can find the not-computed ones.
type Reporter interface {
	Render(table drift.Table, fields []dataset.FieldDescriptor, path string) error
}
