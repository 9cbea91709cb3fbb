// Package template defines the rendering contract HTML renderers depend on,
// decoupling them from the concrete engine. The pongo subpackage provides the
// default implementation.
package template
