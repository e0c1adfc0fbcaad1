// Package aggregator derives dashboard and report figures from a user's
// transactions, debts and savings goals. Every function is pure: the
// reference day is always passed in and inputs are never modified.
package aggregator
