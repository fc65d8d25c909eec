// Package core defines the shared language of the LeapBlocks system.
//
// This package contains:
//   - Domain entities (Block, Connection, Field, Values)
//   - The dialect rule variant (Rule)
//   - Error types shared by the store, catalog and hosts
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
