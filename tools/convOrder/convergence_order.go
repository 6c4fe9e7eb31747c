package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file written by gowave convergence --csv")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	studies, err := readCSV(f)
	if err != nil {
		panic(err)
	}
	keys := make([]string, 0, len(studies))
	for k := range studies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cs := studies[k]
		fmt.Printf("Title = %s, Order = %d, %s, field %s\n", cs.title, cs.order, cs.formulation, cs.field)
		orderInf, order2 := cs.Orders()
		for i := range cs.h {
			fmt.Printf("%8.5f, %11.4e, %11.4e", cs.h[i], cs.lInf[i], cs.l2[i])
			if i > 0 {
				fmt.Printf(", %6.2f, %6.2f", orderInf[i-1], order2[i-1])
			}
			fmt.Printf("\n")
		}
	}
}

type ConvergenceStudy struct {
	title, formulation, field string
	order                     int
	h, lInf, l2               []float64
}

func NewConvergenceStudy(title string, order int, formulation, field string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:       title,
		order:       order,
		formulation: formulation,
		field:       field,
	}
}

func (cs *ConvergenceStudy) Add(h, lInf, l2 float64) {
	cs.h = append(cs.h, h)
	cs.lInf = append(cs.lInf, lInf)
	cs.l2 = append(cs.l2, l2)
}

// Orders are the observed rates between consecutive entries
func (cs *ConvergenceStudy) Orders() (orderInf, order2 []float64) {
	for i := 1; i < len(cs.h); i++ {
		r := math.Log(cs.h[i-1] / cs.h[i])
		orderInf = append(orderInf, math.Log(cs.lInf[i-1]/cs.lInf[i])/r)
		order2 = append(order2, math.Log(cs.l2[i-1]/cs.l2[i])/r)
	}
	return
}

// readCSV groups records by title, order, formulation and field. Columns:
// Title, Order, Formulation, Field, NX, NY, NZ, H, Linf, L2
func readCSV(rd io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records     [][]string
		ok          bool
		cs          *ConvergenceStudy
		n           int
		h, lInf, l2 float64
	)
	studies = make(map[string]*ConvergenceStudy)
	r := csv.NewReader(bufio.NewReader(rd))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 10 {
			return nil, fmt.Errorf("line %d: have %d columns, need 10", i+1, len(rec))
		}
		title, ntxt, form, field := rec[0], rec[1], rec[2], rec[3]
		if n, err = strconv.Atoi(ntxt); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if h, err = strconv.ParseFloat(rec[7], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if lInf, err = strconv.ParseFloat(rec[8], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if l2, err = strconv.ParseFloat(rec[9], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		combTitle := title + ntxt + form + field
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, n, form, field)
			studies[combTitle] = cs
		}
		cs.Add(h, lInf, l2)
	}
	return
}
