package grid

import "fmt"

// Arena holds several named grid functions of one patch in a single
// contiguous buffer. Field slices alias the buffer, so whole-state updates
// can run over Data() in one sweep.
type Arena struct {
	Patch *Patch
	Names []string
	index map[string]int
	buf   []float64
}

func NewArena(p *Patch, names ...string) (a *Arena) {
	a = &Arena{
		Patch: p,
		Names: append([]string{}, names...),
		index: make(map[string]int, len(names)),
		buf:   make([]float64, len(names)*p.Len()),
	}
	for n, name := range names {
		if _, dup := a.index[name]; dup {
			panic(fmt.Sprintf("duplicate grid function name %q", name))
		}
		a.index[name] = n
	}
	return
}

func (a *Arena) NumFields() int { return len(a.Names) }

func (a *Arena) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

func (a *Arena) Get(name string) GridFunction {
	n, ok := a.index[name]
	if !ok {
		panic(fmt.Sprintf("no grid function named %q", name))
	}
	return a.Field(n)
}

func (a *Arena) Field(n int) GridFunction {
	var (
		l = a.Patch.Len()
	)
	return GridFunction(a.buf[n*l : (n+1)*l : (n+1)*l])
}

func (a *Arena) Data() []float64 { return a.buf }

func (a *Arena) Zero() {
	for i := range a.buf {
		a.buf[i] = 0
	}
}

// CopyFrom copies all values from b, which must have the same layout
func (a *Arena) CopyFrom(b *Arena) {
	if len(a.buf) != len(b.buf) {
		panic(fmt.Sprintf("arena size mismatch: %d != %d", len(a.buf), len(b.buf)))
	}
	copy(a.buf, b.buf)
}

// Clone returns a zeroed arena with the same patch and names
func (a *Arena) Clone() *Arena { return NewArena(a.Patch, a.Names...) }
