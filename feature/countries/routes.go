package countries

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Segment ranks, lowest matches first.
const (
	segmentStatic = iota
	segmentParam
	segmentWildcard
)

type route struct {
	method  string
	path    string
	handler fiber.Handler
}

// orderRoutes returns routes sorted most-specific-first: per segment, static
// before parameter before wildcard. Equal shapes keep their declared order.
func orderRoutes(routes []route) []route {
	ordered := make([]route, len(routes))
	copy(ordered, routes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return moreSpecific(ordered[i].path, ordered[j].path)
	})
	return ordered
}

// moreSpecific reports whether a must be tried before b.
func moreSpecific(a, b string) bool {
	ra, rb := segmentRanks(a), segmentRanks(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] != rb[i] {
			return ra[i] < rb[i]
		}
	}
	return len(ra) < len(rb)
}

func segmentRanks(path string) []int {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	ranks := make([]int, len(segments))
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			ranks[i] = segmentParam
		case strings.HasPrefix(seg, "*") || strings.HasPrefix(seg, "+"):
			ranks[i] = segmentWildcard
		default:
			ranks[i] = segmentStatic
		}
	}
	return ranks
}
