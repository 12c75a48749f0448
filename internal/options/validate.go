// Package options holds checks shared by the functional option sets.
package options

import "errors"

// ValidateSingleInputSource returns an error unless exactly one of sources is
// true: noSourceMsg when none is, multiSourceMsg when several are.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return errors.New(noSourceMsg)
	case n > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
