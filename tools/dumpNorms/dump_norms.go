package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "visualization dump to summarize")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	names, norms := readDump(csvFile)
	fmt.Printf("%-16s %12s %12s\n", "Field", "RMS", "MAX")
	for i, name := range names {
		fmt.Printf("%-16s %12.5e %12.5e\n", name, norms[i].rms, norms[i].max)
	}
}

type norm struct {
	rms, max float64
}

// readDump reads a dump written by the csv visualizer: a coordinate column
// followed by one column per field, residual columns included when the run
// carried a reference. Feeding dumps from runs at different cell counts
// through this gives the numbers for a convergence study.
func readDump(csvFile string) (names []string, norms []norm) {
	var (
		records [][]string
		err     error
		f       *os.File
	)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	if len(records) < 2 {
		panic(fmt.Errorf("%s holds no samples", csvFile))
	}
	names = records[0][1:] // drop the coordinate column
	norms = make([]norm, len(names))
	for _, rec := range records[1:] {
		for n := range names {
			val, convErr := strconv.ParseFloat(rec[n+1], 64)
			if convErr != nil {
				panic(convErr)
			}
			norms[n].rms += val * val
			if math.Abs(val) > norms[n].max {
				norms[n].max = math.Abs(val)
			}
		}
	}
	for n := range norms {
		norms[n].rms = math.Sqrt(norms[n].rms / float64(len(records)-1))
	}
	return
}
