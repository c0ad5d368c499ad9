// Package valuation turns an inspection answer-set into a trade-in offer.
//
// Two rule sets are exposed behind the Strategy interface: the graded model
// (gate, aesthetic grade, cascading ceilings, repair deductions, floor band)
// and the legacy three-tier simple model. Every function in this package is
// pure and safe for concurrent use; identical inputs always produce identical
// outputs.
package valuation
