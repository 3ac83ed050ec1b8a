package kinship

import (
	"bufio"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genpriv/pedigree"
)

// WriteAll computes phi(u,v) for every pair of nodes whose generations are
// within keepLast of each other and writes the nonzero coefficients to
// outfile as one lower_id<TAB>upper_id<TAB>coefficient line per pair,
// refusing to overwrite an existing file unless clobber is set. Population
// members must already be in ascending generation order, matching
// pedigree.NewPopulation's arena layout.
func WriteAll(outfile string, clobber bool, p *pedigree.Population, keepLast uint32) error {
	ctx := vcontext.Background()
	if !clobber {
		if existing, err := file.Open(ctx, outfile); err == nil {
			_ = existing.Close(ctx)
			return errors.E(fmt.Sprintf("kinship: %s already exists and clobber is false", outfile))
		} else if e, ok := err.(*errors.Error); !ok || e.Kind != errors.NotExist {
			return errors.E(err, "kinship: checking for existing output file")
		}
	}

	out, err := file.Create(ctx, outfile)
	if err != nil {
		return errors.E(err, "kinship: creating output file")
	}
	w := bufio.NewWriter(out.Writer(ctx))

	c := NewCalculator(p)
	members := p.Members
	for i := range members {
		for j := i; j < len(members); j++ {
			if members[j].Generation > members[i].Generation+keepLast {
				break
			}
			coeff := c.Coefficient(members[i].ID, members[j].ID)
			if coeff == 0 {
				continue
			}
			key := NewKinshipKey(members[i].ID, members[j].ID)
			if _, err := fmt.Fprintf(w, "%d\t%d\t%g\n", key.Lower, key.Upper, coeff); err != nil {
				_ = out.Close(ctx)
				return errors.E(err, "kinship: writing output line")
			}
		}
	}
	if err := w.Flush(); err != nil {
		_ = out.Close(ctx)
		return errors.E(err, "kinship: flushing output")
	}
	return out.Close(ctx)
}
