// Package dtalearn is an active-learning toolkit for deterministic timed
// automata (DTAs).
//
// 🚀 What is dtalearn?
//
//	Given a black-box teacher that can answer membership and equivalence
//	queries over a fixed clock/action vocabulary, dtalearn infers a minimal
//	DTA accepting the same timed language — an L*-style learner generalised
//	from discrete words to delay words, using the finite region abstraction
//	as its time alphabet.
//
// Under the hood, everything is organized under focused subpackages:
//
//	rational/   — exact ℚ ∪ {±∞} arithmetic, the numeric substrate
//	clock/      — clocks, actions, locations, alphabets
//	valuation/  — clock valuations: delay, reset, fractional parts
//	guard/      — atomic and compound guard constraints
//	dbm/        — difference-bound-matrix zone representation
//	region/     — the finite region abstraction (time alphabet)
//	automaton/  — the DTA model: completeness, product, complement, runtime
//	word/       — delay/clock/region timed words and their conversions
//	table/      — the generalised L* observation table
//	learner/    — the best-first active-learning search loop
//	teacher/    — the membership/equivalence oracle interface
//	dtafile/    — JSON persistence for DTAs
//	cmd/learn/  — a CLI driving a file-defined DTA through the learner
//
// See SPEC_FULL.md and DESIGN.md for the full specification and the
// grounding ledger tying each package back to its idiomatic source.
package dtalearn
