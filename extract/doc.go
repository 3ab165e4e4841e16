// Package extract picks one concrete tree out of an e-class's equivalence
// set under a cost function: ExtractionAnalysis computes, bottom-up, the
// minimum-cost node shape for every class, and Extract walks those choices
// back out into a tree.
package extract
