// Package model defines the typed form model consumed by renderers. The
// canonical account-opening form is built by AccountOpening; presentation
// layers decorate it (labels, placeholders, sections, icons) without touching
// the validation rules, which mirror the schema package. Validation rules
// expose canonical identifiers (min, minLength, length, pattern, minAge) with
// string parameters so renderers can map bounds onto HTML attributes or
// prompt validators without re-deriving them.
package model
