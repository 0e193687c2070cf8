package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomarch/integrators"
)

// Parameters obtained from the YAML input file
type SimParameters struct {
	Title         string             `yaml:"Title"`
	Casename      string             `yaml:"Casename"`
	CFL           float64            `yaml:"CFL"`
	ConstantCFL   bool               `yaml:"ConstantCFL"`
	DT            float64            `yaml:"DT"`
	FinalTime     float64            `yaml:"FinalTime"`
	NStatus       int                `yaml:"NStatus"`
	NViz          int                `yaml:"NViz"`
	ExitTolerance float64            `yaml:"ExitTolerance"`
	Integrator    string             `yaml:"Integrator"`
	InitType      string             `yaml:"InitType"`
	BCType        string             `yaml:"BCType"`
	VizFormat     string             `yaml:"VizFormat"`
	VizField      string             `yaml:"VizField"`
	OutputDir     string             `yaml:"OutputDir"`
	NumCells      int                `yaml:"NumCells"`
	XMin          float64            `yaml:"XMin"`
	XMax          float64            `yaml:"XMax"`
	NumRanks      int                `yaml:"NumRanks"`
	Gamma         float64            `yaml:"Gamma"`
	InitParams    map[string]float64 `yaml:"InitParams"` // Initializer constants, e.g. VelocityX, Amplitude
}

// DefaultParameters is the advecting lump case, small enough to run in
// seconds with a live divergence reference.
func DefaultParameters() *SimParameters {
	return &SimParameters{
		Title:         "Advecting density lump",
		Casename:      "lump",
		CFL:           0.65,
		ConstantCFL:   false,
		DT:            0.01,
		FinalTime:     0.5,
		NStatus:       10,
		NViz:          50,
		ExitTolerance: 0.2,
		Integrator:    "RK4",
		InitType:      "Lump",
		BCType:        "prescribed",
		VizFormat:     "none",
		OutputDir:     ".",
		NumCells:      100,
		XMin:          -5,
		XMax:          5,
		NumRanks:      1,
		Gamma:         1.4,
		InitParams:    map[string]float64{"VelocityX": 1},
	}
}

func (ip *SimParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Param reads an initializer constant, falling back to def when the input
// file does not set it.
func (ip *SimParameters) Param(name string, def float64) float64 {
	if val, ok := ip.InitParams[name]; ok {
		return val
	}
	return def
}

// Validate checks the numeric constraints before a run is constructed; the
// collaborator factories reject unknown type names on their own.
func (ip *SimParameters) Validate() (err error) {
	switch {
	case ip.NumCells < 1:
		err = fmt.Errorf("NumCells must be positive, have %d", ip.NumCells)
	case ip.XMax <= ip.XMin:
		err = fmt.Errorf("domain extent is inverted: XMin %v, XMax %v", ip.XMin, ip.XMax)
	case ip.FinalTime < 0:
		err = fmt.Errorf("FinalTime must not be negative, have %v", ip.FinalTime)
	case !ip.ConstantCFL && ip.DT <= 0:
		err = fmt.Errorf("fixed stepping requires DT > 0, have %v", ip.DT)
	case ip.ConstantCFL && ip.CFL <= 0:
		err = fmt.Errorf("constant CFL stepping requires CFL > 0, have %v", ip.CFL)
	case ip.Gamma <= 1:
		err = fmt.Errorf("Gamma must exceed 1, have %v", ip.Gamma)
	case ip.NumRanks < 1:
		err = fmt.Errorf("NumRanks must be positive, have %d", ip.NumRanks)
	case ip.NumRanks > ip.NumCells:
		err = fmt.Errorf("more ranks (%d) than cells (%d)", ip.NumRanks, ip.NumCells)
	}
	if err != nil {
		return
	}
	_, err = integrators.New(ip.Integrator)
	return
}

func (ip *SimParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Casename\n", ip.Casename)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%v\t\t\t= ConstantCFL\n", ip.ConstantCFL)
	fmt.Printf("%8.5f\t\t= DT\n", ip.DT)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= NStatus\n", ip.NStatus)
	fmt.Printf("[%d]\t\t\t= NViz\n", ip.NViz)
	fmt.Printf("%8.5f\t\t= ExitTolerance\n", ip.ExitTolerance)
	fmt.Printf("[%s]\t\t\t= Integrator\n", ip.Integrator)
	fmt.Printf("[%s]\t\t\t= InitType\n", ip.InitType)
	fmt.Printf("[%s]\t\t= BCType\n", ip.BCType)
	fmt.Printf("[%d]\t\t\t= NumCells\n", ip.NumCells)
	fmt.Printf("[%d]\t\t\t= NumRanks\n", ip.NumRanks)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	keys := make([]string, 0, len(ip.InitParams))
	for k := range ip.InitParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("InitParams[%s] = %v\n", key, ip.InitParams[key])
	}
}
