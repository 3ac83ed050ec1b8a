package kinship

import (
	"sort"

	"github.com/grailbio/genpriv/pedigree"
)

// FoundersID returns the sorted, deduplicated set of founder ids that
// contributed to node's pedigree: node itself if it has no recorded
// parents, otherwise every ancestor with no recorded parents reached by
// walking up from node's mother and father.
func FoundersID(p *pedigree.Population, node *pedigree.Node) []uint32 {
	if !node.HasParents() {
		return []uint32{node.ID}
	}
	toVisit := []int32{node.Mother, node.Father}
	seen := map[uint32]bool{}
	for len(toVisit) > 0 {
		id := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		current := &p.Members[id]
		if current.HasParents() {
			toVisit = append(toVisit, current.Mother, current.Father)
		} else {
			seen[current.ID] = true
		}
	}
	founders := make([]uint32, 0, len(seen))
	for id := range seen {
		founders = append(founders, id)
	}
	sort.Slice(founders, func(i, j int) bool { return founders[i] < founders[j] })
	return founders
}
