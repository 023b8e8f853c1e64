// Package scale maps data values onto chart coordinates and colours.
//
// Band scales split a continuous pixel range into equal slots, one per
// distinct domain value. Sequential scales normalise a numeric domain onto
// [0, 1] and hand the result to a palette. Linear scales map a numeric domain
// onto a pixel range and pick readable tick values for an axis.
package scale
