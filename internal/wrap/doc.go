// Package wrap reflows subtitle block text into at most two balanced
// display lines under a character budget.
package wrap
