// Package classifier implements the keyword-weighted scam text classifier.
//
// The classifier is a deterministic pure function: it lower-cases the input,
// adds the weight of every configured keyword phrase present as a substring
// (each phrase counts at most once), clamps the total to 100, and compares
// the result against a cutoff to produce the boolean verdict.
//
// Design decision: a keyword table stands in for a trained model on purpose.
// It is fully explainable, trivially testable, and its scoring policy is the
// part the risk aggregator actually depends on. Swapping in a real model
// later only requires implementing the same Classify contract.
package classifier
