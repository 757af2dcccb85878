package lines

import (
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

var graphemeSetup sync.Once

// DisplayWidth returns the number of terminal cells needed to display s.
//
// Width is computed per grapheme cluster, with East Asian wide characters
// taking two cells. s should not contain a line terminator.
func DisplayWidth(s string) int {
	if s == "" {
		return 0
	}
	graphemeSetup.Do(func() {
		grapheme.SetupGraphemeClasses()
	})
	return uax11.StringWidth(grapheme.StringFromString(s), uax11.LatinContext)
}
