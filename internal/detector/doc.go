// Package detector implements the independent risk detectors.
//
// Each detector inspects one evidence source (URL shape, domain age, page
// text, form submission) and produces zero or more scored findings. Detectors
// are stateless between invocations and never abort the analysis pipeline:
// malformed input and upstream failures degrade to "no findings" so one
// failing signal cannot block the others.
//
// Design decision: detectors share the single Detect(ctx, evidence) contract
// rather than bespoke signatures so the aggregator and the scan command can
// treat them uniformly, and so new signals can be added without touching the
// orchestration code.
package detector
