/*
Package expression implements the minimal expression grammar used by dynasim
for key conditions, filters, and item updates.

The grammar covers comparisons (=, <, >, <=, >=), boolean AND, placeholders
(:name) bound to supplied attribute values, inline scalar literals, and
SET/REMOVE update clauses:

	status = :s AND age > 30
	city = 'San Francisco' AND active = true
	SET status = :s, shipped_at = :t REMOVE draft

Expressions are tokenized and parsed by a small recursive-descent parser into
an explicit tree, so evaluation semantics (clause ordering, placeholder
binding, comparison typing) stay auditable and testable independent of the
table store. Condition evaluation is pure; ApplyUpdate returns a fresh item
and never mutates its input.
*/
package expression
