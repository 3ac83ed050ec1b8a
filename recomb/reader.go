// Package recomb builds per-sex recombinators from HapMap-format genetic
// map files and applies crossover events to genomes during meiosis.
package recomb

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genpriv/ibd"
	"github.com/pkg/errors"
)

// Files lists the HapMap genetic map filename for each autosome, in
// chromosome-number order.
var Files = map[uint32]string{
	1: "genetic_map_chr1_b36.txt", 2: "genetic_map_chr2_b36.txt",
	3: "genetic_map_chr3_b36.txt", 4: "genetic_map_chr4_b36.txt",
	5: "genetic_map_chr5_b36.txt", 6: "genetic_map_chr6_b36.txt",
	7: "genetic_map_chr7_b36.txt", 8: "genetic_map_chr8_b36.txt",
	9: "genetic_map_chr9_b36.txt", 10: "genetic_map_chr10_b36.txt",
	11: "genetic_map_chr11_b36.txt", 12: "genetic_map_chr12_b36.txt",
	13: "genetic_map_chr13_b36.txt", 14: "genetic_map_chr14_b36.txt",
	15: "genetic_map_chr15_b36.txt", 16: "genetic_map_chr16_b36.txt",
	17: "genetic_map_chr17_b36.txt", 18: "genetic_map_chr18_b36.txt",
	19: "genetic_map_chr19_b36.txt", 20: "genetic_map_chr20_b36.txt",
	21: "genetic_map_chr21_b36.txt", 22: "genetic_map_chr22_b36.txt",
}

// ReadFile parses one HapMap genetic map file: a header row followed by
// whitespace-delimited rows of (bp, rate_cM_per_Mb, cumulative_cM).
func ReadFile(r io.Reader) ([]ibd.RateRow, error) {
	scanner := bufio.NewScanner(r)
	var rows []ibd.RateRow
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.Errorf("recomb: malformed row %q", line)
		}
		bp, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "recomb: parsing bp in %q", line)
		}
		rate, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "recomb: parsing rate in %q", line)
		}
		cumCm, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "recomb: parsing cumulative cM in %q", line)
		}
		rows = append(rows, ibd.RateRow{Bp: uint32(bp), RateCmPerMb: rate, CumulativeCm: cumCm})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "recomb: scanning genetic map")
	}
	return rows, nil
}

// ReadFilePath opens and parses a single genetic map file at path.
func ReadFilePath(path string) ([]ibd.RateRow, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "recomb: opening %s", path)
	}
	defer func() { _ = f.Close(ctx) }()
	return ReadFile(f.Reader(ctx))
}

// ReadDirectory loads every chromosome's genetic map file out of directory,
// keyed by chromosome number, per the Files naming convention.
func ReadDirectory(directory string) (map[uint32][]ibd.RateRow, error) {
	data := make(map[uint32][]ibd.RateRow, len(Files))
	for chrom, filename := range Files {
		path := directory + "/" + filename
		rows, err := ReadFilePath(path)
		if err != nil {
			return nil, err
		}
		data[chrom] = rows
	}
	return data, nil
}
