//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
	"github.com/cwbudde/algo-sigexplore/explorer"
)

var (
	ctrl  *explorer.Controller
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// init([start, stop, points, seed]) builds a controller; defaults match
	// the CLI.
	api.Set("init", export(func(args []js.Value) any {
		grid := core.DefaultGrid()
		if len(args) >= 3 {
			g, err := core.Linspace(args[0].Float(), args[1].Float(), args[2].Int())
			if err != nil {
				return err.Error()
			}
			grid = g
		}
		var opts []explorer.Option
		if len(args) >= 4 {
			opts = append(opts, explorer.WithSeed(uint64(args[3].Int())))
		}
		c, err := explorer.New(grid, opts...)
		if err != nil {
			return err.Error()
		}
		ctrl = c
		return js.Null()
	}))

	api.Set("defaults", export(func([]js.Value) any {
		return stateToJS(explorer.DefaultState())
	}))

	api.Set("reset", export(func([]js.Value) any {
		if ctrl != nil {
			ctrl.Reset()
		}
		return stateToJS(explorer.DefaultState())
	}))

	// recompute(state) returns {t, pure, displayed, filtered, path} or
	// {error}. Hidden values are NaN.
	api.Set("recompute", export(func(args []js.Value) any {
		if ctrl == nil || len(args) < 1 {
			return errorToJS("explorer not initialised")
		}
		v, err := ctrl.RecomputeState(stateFromJS(args[0]))
		if err != nil {
			return errorToJS(err.Error())
		}
		res := js.Global().Get("Object").New()
		res.Set("t", float64Array(ctrl.Grid().Points()))
		res.Set("pure", float64Array(v.Pure))
		res.Set("displayed", float64Array(v.Displayed))
		res.Set("filtered", float64Array(v.Filtered))
		res.Set("path", v.Path.String())
		return res
	}))

	js.Global().Set("SigExplore", api)
	select {}
}

func stateFromJS(p js.Value) explorer.State {
	st := explorer.DefaultState()
	if p.Type() != js.TypeObject {
		return st
	}
	st.Signal = explorer.SignalParams{
		Amplitude: number(p, "amplitude", st.Signal.Amplitude),
		Frequency: number(p, "frequency", st.Signal.Frequency),
		Phase:     number(p, "phase", st.Signal.Phase),
	}
	st.Noise = explorer.NoiseParams{
		Mean:     number(p, "noiseMean", st.Noise.Mean),
		Variance: number(p, "noiseVariance", st.Noise.Variance),
	}
	st.Selection = bank.Selection{
		NoiseEnabled:    flag(p, "showNoise", st.Selection.NoiseEnabled),
		FilterEnabled:   flag(p, "showFilter", st.Selection.FilterEnabled),
		UseCustomFilter: flag(p, "customFilter", st.Selection.UseCustomFilter),
	}
	st.Tuning = explorer.FilterTuning{
		Window:         int(number(p, "window", float64(st.Tuning.Window))),
		Order:          int(number(p, "order", float64(st.Tuning.Order))),
		CutoffMult:     number(p, "cutoffMult", st.Tuning.CutoffMult),
		SampleRateMult: number(p, "sampleRateMult", st.Tuning.SampleRateMult),
		CutoffHz:       number(p, "cutoffHz", st.Tuning.CutoffHz),
	}
	return st
}

func stateToJS(st explorer.State) js.Value {
	o := js.Global().Get("Object").New()
	o.Set("amplitude", st.Signal.Amplitude)
	o.Set("frequency", st.Signal.Frequency)
	o.Set("phase", st.Signal.Phase)
	o.Set("noiseMean", st.Noise.Mean)
	o.Set("noiseVariance", st.Noise.Variance)
	o.Set("showNoise", st.Selection.NoiseEnabled)
	o.Set("showFilter", st.Selection.FilterEnabled)
	o.Set("customFilter", st.Selection.UseCustomFilter)
	o.Set("window", st.Tuning.Window)
	o.Set("order", st.Tuning.Order)
	o.Set("cutoffMult", st.Tuning.CutoffMult)
	o.Set("sampleRateMult", st.Tuning.SampleRateMult)
	o.Set("cutoffHz", st.Tuning.CutoffHz)
	return o
}

func number(p js.Value, key string, def float64) float64 {
	v := p.Get(key)
	if v.Type() != js.TypeNumber {
		return def
	}
	return v.Float()
}

func flag(p js.Value, key string, def bool) bool {
	v := p.Get(key)
	if v.Type() != js.TypeBoolean {
		return def
	}
	return v.Bool()
}

func float64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, x := range data {
		arr.SetIndex(i, x)
	}
	return arr
}

func errorToJS(msg string) js.Value {
	o := js.Global().Get("Object").New()
	o.Set("error", msg)
	return o
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
