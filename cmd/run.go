/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gomarch/InputParameters"
	"github.com/notargets/gomarch/checkpoint"
	"github.com/notargets/gomarch/eos"
	"github.com/notargets/gomarch/euler"
	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/initializers"
	"github.com/notargets/gomarch/integrators"
	"github.com/notargets/gomarch/logging"
	"github.com/notargets/gomarch/steppers"
	"github.com/notargets/gomarch/utils"
	"github.com/notargets/gomarch/viz"
)

type RunOptions struct {
	InputFile string
	Graph     bool
	Delay     time.Duration
	Profile   bool
	Perf      bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance a compressible flow case from t=0 to its final time",
	Long: `
Advances a compressible flow case with an explicit integrator, reporting
status and dumping visualization output on the configured step intervals.
Without an input file the built-in advecting lump case runs.

gomarch run -I input.yaml --ranks 4`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		ro := &RunOptions{}
		if ro.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		ro.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		ro.Delay = time.Duration(dr) * time.Millisecond
		ro.Profile, _ = cmd.Flags().GetBool("profile")
		ro.Perf, _ = cmd.Flags().GetBool("perf")
		ip := processInput(ro, cmd)
		RunSim(ro, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputFile", "I", "", "YAML file for input parameters like:\n\t- DT\n\t- FinalTime\n\t- NumCells")
	RunCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	RunCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	RunCmd.Flags().Bool("perf", false, "count hardware instructions retired over the run (linux)")
	RunCmd.Flags().Int("ranks", 0, "override NumRanks from the input file")
	RunCmd.Flags().Float64("finalTime", 0, "override FinalTime from the input file")
	RunCmd.Flags().Float64("CFL", 0, "override CFL from the input file and select constant CFL stepping")
}

func processInput(ro *RunOptions, cmd *cobra.Command) (ip *InputParameters.SimParameters) {
	var (
		err error
	)
	ip = InputParameters.DefaultParameters()
	if len(ro.InputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(ro.InputFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
	}
	if cmd.Flags().Changed("ranks") {
		ip.NumRanks, _ = cmd.Flags().GetInt("ranks")
	}
	if cmd.Flags().Changed("finalTime") {
		ip.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	}
	if cmd.Flags().Changed("CFL") {
		ip.CFL, _ = cmd.Flags().GetFloat64("CFL")
		ip.ConstantCFL = true
	}
	if err = ip.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Advecting density lump"
Casename: lump
DT: 0.01
FinalTime: 0.5
NStatus: 10
NViz: 50
ExitTolerance: 0.2
Integrator: RK4 # Can be "LSERK4" or "ForwardEuler"
InitType: Lump # Can be "Pulse", "Uniform" or "Sod"
BCType: prescribed # Can be "wall"
VizFormat: none # Can be "csv", "png" or "ascii"
NumCells: 100
XMin: -5
XMax: 5
NumRanks: 2
InitParams:
  VelocityX: 1
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	return
}

func RunSim(ro *RunOptions, ip *InputParameters.SimParameters) {
	if ro.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	fmt.Printf("Initialization for Case(%s)\n", ip.Casename)
	ip.Print()
	sol, exact, err := buildInitializer(ip)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	results := runRanks(ro, ip, sol, exact)
	failed := false
	for rank, res := range results {
		if res.Status != steppers.Completed {
			failed = true
			if res.Err != nil {
				fmt.Printf("rank %d %s: %s\n", rank, res.Status, res.Err.Error())
			}
		}
	}
	res := results[0]
	fmt.Printf("%s after %d steps, t =%8.5f\n", res.Status, res.Step, res.T)
	fmt.Printf("%s\n", utils.GetMemUsage())
	if failed {
		os.Exit(1)
	}
}

func runRanks(ro *RunOptions, ip *InputParameters.SimParameters,
	sol, exact initializers.Solution) (results []steppers.Result) {
	var (
		pm    = utils.NewPartitionMap(ip.NumRanks, ip.NumCells)
		comms = utils.NewLocalGroup(ip.NumRanks)
		log   = logging.New(os.Stdout)
		gas   = eos.NewIdealGas(ip.Gamma)
		wg    sync.WaitGroup
	)
	results = make([]steppers.Result, ip.NumRanks)
	for rank := 0; rank < ip.NumRanks; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = runRank(ro, ip, pm, comms[rank], gas, sol, exact, log)
		}(rank)
	}
	wg.Wait()
	return
}

func runRank(ro *RunOptions, ip *InputParameters.SimParameters, pm *utils.PartitionMap,
	comm utils.Communicator, gas eos.Gas, sol, exact initializers.Solution,
	log logging.Logger) steppers.Result {
	var (
		rank = comm.Rank()
		msh  = euler.NewMesh1D(ip.XMin, ip.XMax, ip.NumCells, pm, rank)
	)
	bc, err := euler.NewBoundary(ip.BCType, sol)
	if err != nil {
		return steppers.Result{Status: steppers.Failed, Err: err}
	}
	stepper, err := integrators.New(ip.Integrator)
	if err != nil {
		return steppers.Result{Status: steppers.Failed, Err: err}
	}
	op := euler.NewInviscidOperator(msh, gas, bc, comm)
	selector := &steppers.TimestepSelector{
		DT:          ip.DT,
		CFL:         ip.CFL,
		TFinal:      ip.FinalTime,
		ConstantCFL: ip.ConstantCFL,
		Stable:      op,
	}
	q := sol.Evaluate(0, msh.Nodes())
	sink, err := buildVisualizer(ro, ip, msh, q, log, rank)
	if err != nil {
		return steppers.Result{Status: steppers.Failed, Err: err}
	}
	reporter := &checkpoint.Reporter{
		Gas:      gas,
		Nodes:    msh.Nodes(),
		Exact:    exact,
		Viz:      sink,
		Log:      log,
		Comm:     comm,
		Casename: ip.Casename,
		NStatus:  ip.NStatus,
		NViz:     ip.NViz,
		ExitTol:  ip.ExitTolerance,
		CFL:      ip.CFL,
	}
	advance := func() steppers.Result {
		return steppers.Advance(op, stepper, selector.NextDT, reporter.Checkpoint, q, 0, ip.FinalTime)
	}
	if ro.Perf {
		return advanceCounted(advance, log, rank)
	}
	return advance()
}

// buildInitializer returns the initial condition and, when the flow has a
// closed-form evolution, the same solution as the divergence reference.
func buildInitializer(ip *InputParameters.SimParameters) (sol, exact initializers.Solution, err error) {
	var (
		center   = []float64{ip.Param("CenterX", 0)}
		velocity = []float64{ip.Param("VelocityX", 0)}
	)
	switch strings.ToLower(ip.InitType) {
	case "lump":
		l := initializers.NewLump(ip.Gamma, center, velocity)
		l.Rho0 = ip.Param("Rho0", l.Rho0)
		l.RhoAmp = ip.Param("RhoAmp", l.RhoAmp)
		l.P0 = ip.Param("P0", l.P0)
		sol, exact = l, l
	case "uniform", "freestream":
		u := initializers.NewUniform(ip.Gamma, velocity)
		u.Rho = ip.Param("Rho0", u.Rho)
		u.P = ip.Param("P0", u.P)
		sol, exact = u, u
	case "pulse", "acousticpulse":
		base := initializers.NewUniform(ip.Gamma, velocity)
		base.Rho = ip.Param("Rho0", base.Rho)
		base.P = ip.Param("P0", base.P)
		sol = initializers.NewAcousticPulse(ip.Param("Amplitude", 1),
			ip.Param("Width", 0.1), center, base)
	case "sod", "sodtube":
		s := initializers.NewSodTube(ip.Gamma, ip.Param("CenterX", 0.5))
		sol, exact = s, s
	default:
		err = fmt.Errorf("unknown InitType %q", ip.InitType)
	}
	return
}

func buildVisualizer(ro *RunOptions, ip *InputParameters.SimParameters, msh *euler.Mesh1D,
	q fields.Conserved, log logging.Logger, rank int) (sink checkpoint.Visualizer, err error) {
	if ro.Graph {
		// The live chart window belongs to rank 0; other ranks run dark.
		if rank != 0 {
			return
		}
		ymin, ymax := plotRange(q)
		sink = &viz.LiveChart{X: msh.Nodes(), YMin: ymin, YMax: ymax, Delay: ro.Delay}
		return
	}
	switch strings.ToLower(ip.VizFormat) {
	case "", "none":
	case "csv":
		sink = &viz.CSV{Dir: ip.OutputDir, X: msh.Nodes()}
	case "png":
		sink = &viz.PNG{Dir: ip.OutputDir, X: msh.Nodes()}
	case "ascii":
		sink = &viz.ASCII{Log: logging.Ranked(log, rank), Field: ip.VizField}
	default:
		err = fmt.Errorf("unknown VizFormat %q", ip.VizFormat)
	}
	return
}

func plotRange(q fields.Conserved) (ymin, ymax float32) {
	var (
		lo = math.Inf(1)
		hi = math.Inf(-1)
	)
	for _, v := range q.Q {
		lo = math.Min(lo, v.Min())
		hi = math.Max(hi, v.Max())
	}
	pad := 0.2 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	return float32(lo - pad), float32(hi + pad)
}
