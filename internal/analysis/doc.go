// Package analysis drives analysis setups, excitation labels, boundaries and
// sweeps on a design reached through an automation.DesignPort.
//
// Circuit covers Nexxim circuit designs. Extractor covers Q3D and 2D
// Extractor designs; the solver dimension is a Backend chosen at
// construction, and operations the backend does not support return
// ErrUnsupported.
package analysis
