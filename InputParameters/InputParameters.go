package InputParameters

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/ini.v1"

	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/utils"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Parameters obtained from the YAML input file. ghodss/yaml converts to JSON
// before decoding, so the json tags name the keys.
type InputParameters3D struct {
	Title                string             `json:"Title"`
	FDOrder              int                `json:"fd_order"`
	FieldMass            float64            `json:"field_mass"`
	BCType               string             `json:"bc_type"` // Applied to every face not listed in BCs
	BCs                  map[string]string  `json:"BCs"`     // Face name to BC name, e.g. xlower: radiative
	Formulation          string             `json:"Formulation"`
	N                    [3]int             `json:"Points"` // Interior points per direction. Not N, which YAML 1.1 reads as false
	XMin                 [3]float64         `json:"XMin"`
	XMax                 [3]float64         `json:"XMax"`
	Ghost                int                `json:"Ghost"` // Zero selects the minimum for the order
	CoordinateMap        string             `json:"CoordinateMap"`
	MapParameters        map[string]float64 `json:"MapParameters"`
	Background           string             `json:"Background"`
	BackgroundParameters map[string]float64 `json:"BackgroundParameters"`
	InitType             string             `json:"InitType"`
	InitParameters       map[string]float64 `json:"InitParameters"`
	CFL                  float64            `json:"CFL"`
	FinalTime            float64            `json:"FinalTime"`
	MaxIterations        int                `json:"MaxIterations"`
	Dissipation          float64            `json:"Dissipation"`
	ProcLimit            int                `json:"ProcLimit"`
	PlotSteps            int                `json:"PlotSteps"`
}

func NewInputParameters3D() *InputParameters3D {
	return &InputParameters3D{
		Title:         "Scalar Wave",
		FDOrder:       4,
		BCType:        "periodic",
		Formulation:   "secondorder",
		N:             [3]int{32, 32, 32},
		XMin:          [3]float64{-1, -1, -1},
		XMax:          [3]float64{1, 1, 1},
		CoordinateMap: "cartesian",
		Background:    "minkowski",
		InitType:      "planewave",
		CFL:           0.5,
		FinalTime:     1,
		MaxIterations: 5000,
	}
}

func (ip *InputParameters3D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParsePar reads a Cactus style parameter file of "thorn::key = value" lines.
// Thorn names select the destination: CoordinateMap, Background and
// InitialData keys land in the matching parameter maps, the remaining keys
// are matched by name. Keys are case insensitive.
func (ip *InputParameters3D) ParsePar(data []byte) (err error) {
	var (
		f *ini.File
	)
	if f, err = ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters: "=",
		Insensitive:        true,
	}, data); err != nil {
		return
	}
	for _, key := range f.Section(ini.DefaultSection).Keys() {
		name := key.Name()
		thorn, param := "", name
		if i := strings.Index(name, "::"); i >= 0 {
			thorn, param = name[:i], name[i+2:]
		}
		if err = ip.setPar(thorn, param, key); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return
}

func (ip *InputParameters3D) setPar(thorn, param string, key *ini.Key) (err error) {
	setMap := func(m *map[string]float64) (err error) {
		var v float64
		if v, err = key.Float64(); err != nil {
			return
		}
		if *m == nil {
			*m = make(map[string]float64)
		}
		(*m)[param] = v
		return
	}
	// nx, xmin, xmax and friends
	axis := func(prefix, suffix string) (dir int, ok bool) {
		if len(param) == len(prefix)+len(suffix)+1 &&
			strings.HasPrefix(param, prefix) && strings.HasSuffix(param, suffix) {
			dir = strings.IndexByte("xyz", param[len(prefix)])
			ok = dir >= 0
		}
		return
	}
	switch thorn {
	case "coordinatemap":
		return setMap(&ip.MapParameters)
	case "background":
		return setMap(&ip.BackgroundParameters)
	case "initialdata":
		return setMap(&ip.InitParameters)
	}
	if dir, ok := axis("n", ""); ok {
		ip.N[dir], err = key.Int()
		return
	}
	if dir, ok := axis("", "min"); ok {
		ip.XMin[dir], err = key.Float64()
		return
	}
	if dir, ok := axis("", "max"); ok {
		ip.XMax[dir], err = key.Float64()
		return
	}
	if face, perr := utils.ParseFaceName(param); perr == nil {
		if ip.BCs == nil {
			ip.BCs = make(map[string]string)
		}
		ip.BCs[face.String()] = key.String()
		return
	}
	switch param {
	case "activethorns":
	case "title":
		ip.Title = key.String()
	case "fd_order":
		ip.FDOrder, err = key.Int()
	case "field_mass":
		ip.FieldMass, err = key.Float64()
	case "bc_type":
		ip.BCType = key.String()
	case "formulation":
		ip.Formulation = key.String()
	case "ghost_size":
		ip.Ghost, err = key.Int()
	case "coordinate_map":
		ip.CoordinateMap = key.String()
	case "background":
		ip.Background = key.String()
	case "initial_data":
		ip.InitType = key.String()
	case "cfl", "dtfac":
		ip.CFL, err = key.Float64()
	case "cctk_final_time", "final_time":
		ip.FinalTime, err = key.Float64()
	case "cctk_itlast", "max_iterations":
		ip.MaxIterations, err = key.Int()
	case "dissipation", "epsdis":
		ip.Dissipation, err = key.Float64()
	case "proc_limit":
		ip.ProcLimit, err = key.Int()
	case "plot_steps":
		ip.PlotSteps, err = key.Int()
	default:
		err = fmt.Errorf("unknown parameter")
	}
	return
}

// BCNames resolves the boundary name of every face, in face order
func (ip *InputParameters3D) BCNames() (names [6]string) {
	for f := utils.XLower; f <= utils.ZUpper; f++ {
		names[f] = ip.BCType
		for key, name := range ip.BCs {
			if face, err := utils.ParseFaceName(key); err == nil && face == f {
				names[f] = name
			}
		}
	}
	return
}

// Validate checks the parameters once at setup and fills in the ghost width
// when it was left at zero
func (ip *InputParameters3D) Validate() (err error) {
	var (
		order FD3D.Order
	)
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
	}
	if order, err = FD3D.NewOrder(ip.FDOrder); err != nil {
		return
	}
	if math.IsNaN(ip.FieldMass) || math.IsInf(ip.FieldMass, 0) {
		return invalid("field_mass must be finite, have %g", ip.FieldMass)
	}
	for dir := 0; dir < 3; dir++ {
		if ip.N[dir] < 1 {
			return invalid("Points[%d] = %d, need at least one point", dir, ip.N[dir])
		}
		if !(ip.XMax[dir] > ip.XMin[dir]) {
			return invalid("XMax[%d] = %g must exceed XMin[%d] = %g", dir, ip.XMax[dir], dir, ip.XMin[dir])
		}
	}
	for key := range ip.BCs {
		if _, err = utils.ParseFaceName(key); err != nil {
			return invalid("BCs: %v", err)
		}
	}
	for _, name := range ip.BCNames() {
		if _, err = utils.ParseBCName(name); err != nil {
			return invalid("%v", err)
		}
	}
	if !(ip.CFL > 0) {
		return invalid("CFL must be positive, have %g", ip.CFL)
	}
	if ip.FinalTime < 0 || ip.MaxIterations < 0 {
		return invalid("FinalTime and MaxIterations must not be negative")
	}
	if ip.Dissipation < 0 {
		return invalid("Dissipation must not be negative, have %g", ip.Dissipation)
	}
	minGhost := order.Width()
	if ip.Dissipation > 0 {
		minGhost = order.DissipationWidth()
	}
	if ip.Ghost == 0 {
		ip.Ghost = minGhost
	}
	if ip.Ghost < minGhost {
		return fmt.Errorf("%w: have %d, order %s needs %d", FD3D.ErrInsufficientGhosts, ip.Ghost, order, minGhost)
	}
	for f, name := range ip.BCNames() {
		var (
			bc, _ = utils.ParseBCName(name)
			dir   = utils.Face(f).Dir()
		)
		if need := bc.MinPoints(ip.Ghost); ip.N[dir] < need {
			return invalid("%s boundary on %s needs %d points along the normal with %d ghost zones, have %d",
				bc, utils.Face(f), need, ip.Ghost, ip.N[dir])
		}
	}
	return
}

func (ip *InputParameters3D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= FD Order\n", ip.FDOrder)
	fmt.Printf("%8.5f\t\t= Field Mass\n", ip.FieldMass)
	fmt.Printf("[%s]\t\t= Formulation\n", ip.Formulation)
	fmt.Printf("%v\t\t= N\n", ip.N)
	fmt.Printf("%v -> %v\t= Domain\n", ip.XMin, ip.XMax)
	fmt.Printf("[%d]\t\t\t\t= Ghost Width\n", ip.Ghost)
	fmt.Printf("[%s] %s\t= Coordinate Map\n", ip.CoordinateMap, printMap(ip.MapParameters))
	fmt.Printf("[%s] %s\t= Background\n", ip.Background, printMap(ip.BackgroundParameters))
	fmt.Printf("[%s] %s\t= InitType\n", ip.InitType, printMap(ip.InitParameters))
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= Dissipation\n", ip.Dissipation)
	names := ip.BCNames()
	for f := utils.XLower; f <= utils.ZUpper; f++ {
		fmt.Printf("BCs[%s] = %s\n", f, names[f])
	}
}

func printMap(m map[string]float64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%g", k, m[k])
	}
	return sb.String()
}
