// Package interp implements the shallot script evaluator: a small language
// for orchestrating host capabilities. The engine package is its only
// intended consumer; hosts embed the evaluator through engine.Engine rather
// than calling into this package directly.
//
// A program is a sequence of statements:
//
//	@required add;                // assert a context binding exists
//	@import util "lib/util.sha";  // evaluate a file, bind its result
//	total := add(3, 5);           // call a host adapter
//	return total;
//
// Every evaluation produces a terminal outcome pair: (true, result) when the
// program returns normally, (false, error value) when it raises or a host
// call fails. Parse failures and invalid imports are host-level errors and
// never masquerade as script outcomes.
package interp
