package splitter

import "github.com/wavepath/flacscan/internal/types"

// stackedStrategy is the Stacked Vorbis Comments variant. The in-the-wild
// convention it would recover (multiple complete tag sets packed into a
// single comment block, delimited by a vendor-specific marker) has no
// test corpus available, so it is left disabled per the documented
// guidance not to reimplement it speculatively.
type stackedStrategy struct{}

func (stackedStrategy) Name() string { return "stacked-vc" }

func (stackedStrategy) Try(types.ScanResult, map[int]types.TagMap) (int, []types.Warning) {
	return 0, nil
}
