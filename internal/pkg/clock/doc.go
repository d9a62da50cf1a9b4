// Package clock provides a tiny time abstraction.
//
// Production code depends on the Clocker interface instead of calling
// time.Now() directly. Tests swap in a Manual clock to move past cache
// expiries and date-range defaults deterministically.
package clock
