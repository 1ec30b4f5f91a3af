// Package macro implements the syntax-rules pattern matcher and template
// instantiator (§4.7, C8): matching a use form against each rule's pattern
// in turn, binding pattern variables (including ellipsis-repeated ones) to
// their captures, and instantiating the winning rule's template with those
// captures substituted in and every template-introduced free identifier
// wrapped in a syntactic closure for hygiene.
//
// The matcher and instantiator only depend on runtime and syntax, never on
// the evaluator, so macro expansion is a pure function of
// (runtime.SyntaxRules, use form, use environment) -> expanded form.
package macro
