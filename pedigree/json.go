package pedigree

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
)

type jsonSex string

const (
	jsonFemale jsonSex = "Female"
	jsonMale   jsonSex = "Male"
)

// jsonNode is the wire shape of one pedigree member: optional fields are
// nil when the corresponding relationship is absent.
type jsonNode struct {
	ID              uint32  `json:"id"`
	Sex             jsonSex `json:"sex"`
	Generation      uint32  `json:"generation"`
	Father          *uint32 `json:"father"`
	Mother          *uint32 `json:"mother"`
	SuspectedFather *uint32 `json:"suspected_father"`
	SuspectedMother *uint32 `json:"suspected_mother"`
	Twin            *uint32 `json:"twin"`
}

type jsonRelated struct {
	LabeledNode   uint32 `json:"labeled_node"`
	UnlabeledNode uint32 `json:"unlabeled_node"`
}

type jsonPopulation struct {
	Nodes   []jsonNode    `json:"nodes"`
	Related []jsonRelated `json:"related"`
	Labeled []uint32      `json:"labeled"`
}

// ImportedPopulation bundles the Population a JSON pedigree file describes
// together with the labeled and related-pair sets the simulate, fit, and
// identify commands all need alongside it.
type ImportedPopulation struct {
	Population *Population
	Related    []RelatedPair
	Labeled    []uint32
}

// Load reads and parses a JSON pedigree description from path. Node ids
// must already be dense [0, N) and, within that arena, every father,
// mother, suspected_father, suspected_mother, and twin reference must name
// an id in that same range; Load orders nodes by id but does not renumber
// them.
func Load(path string) (*ImportedPopulation, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "pedigree: opening population file")
	}
	defer func() { _ = f.Close(ctx) }()
	raw, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "pedigree: reading population file")
	}

	var jp jsonPopulation
	if err := json.Unmarshal(raw, &jp); err != nil {
		return nil, errors.E(err, "pedigree: parsing population JSON")
	}
	return fromJSON(&jp)
}

func fromJSON(jp *jsonPopulation) (*ImportedPopulation, error) {
	sort.Slice(jp.Nodes, func(i, j int) bool { return jp.Nodes[i].ID < jp.Nodes[j].ID })

	nodes := make([]Node, len(jp.Nodes))
	for i, jn := range jp.Nodes {
		if jn.ID != uint32(i) {
			return nil, errors.E(fmt.Sprintf("pedigree: node ids must be dense [0, %d), got id %d at position %d", len(jp.Nodes), jn.ID, i))
		}
		n := newNode(jn.ID)
		n.Generation = jn.Generation
		n.Sex = Female
		if jn.Sex == jsonMale {
			n.Sex = Male
		}
		ref := func(field string, v *uint32) (int32, error) {
			if v == nil {
				return noParent, nil
			}
			if *v >= uint32(len(jp.Nodes)) {
				return 0, errors.E(fmt.Sprintf("pedigree: node %d's %s %d is outside [0, %d)", jn.ID, field, *v, len(jp.Nodes)))
			}
			return int32(*v), nil
		}
		var err error
		if n.Father, err = ref("father", jn.Father); err != nil {
			return nil, err
		}
		if n.Mother, err = ref("mother", jn.Mother); err != nil {
			return nil, err
		}
		if n.SuspectedFather, err = ref("suspected_father", jn.SuspectedFather); err != nil {
			return nil, err
		}
		if n.SuspectedMother, err = ref("suspected_mother", jn.SuspectedMother); err != nil {
			return nil, err
		}
		if n.Twin, err = ref("twin", jn.Twin); err != nil {
			return nil, err
		}
		nodes[i] = n
	}

	population := NewPopulation(nodes)

	related := make([]RelatedPair, len(jp.Related))
	for i, r := range jp.Related {
		related[i] = RelatedPair{Labeled: r.LabeledNode, Unlabeled: r.UnlabeledNode}
	}

	return &ImportedPopulation{
		Population: population,
		Related:    related,
		Labeled:    append([]uint32(nil), jp.Labeled...),
	}, nil
}
