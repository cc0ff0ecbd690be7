package cmd

import (
	"github.com/etnz/capscope"
	"github.com/etnz/capscope/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests and exits when the program was invoked for one.
//
// Run 'COMP_INSTALL=1 capscope' to install the completion in the shell.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	formats := predict.Set{"csv", "json"}
	providers := predict.Set{"eodhd", "yahoo"}
	priceProviders := predict.Set{"eodhd", "yahoo", "tiingo", "alpaca"}
	sectors := predict.Set(capscope.KnownSectors())

	pipeline := map[string]complete.Predictor{
		"provider": providers,
		"prices":   priceProviders,
		"workers":  predict.Something,
		"lookback": predict.Something,
		"v":        predict.Nothing,
	}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range pipeline {
			flags[k] = v
		}
		return flags
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"rank": {Flags: with(map[string]complete.Predictor{
				"d": predict.Something,
				"o": predict.Files("*"),
				"f": formats,
				"s": sectors,
				"t": predict.Something,
			})},
			"report": {Flags: with(map[string]complete.Predictor{
				"d":     predict.Something,
				"s":     sectors,
				"t":     predict.Something,
				"style": predict.Set{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"},
				"w":     predict.Something,
				"raw":   predict.Nothing,
			})},
			"view": {Flags: with(map[string]complete.Predictor{
				"d":      predict.Something,
				"export": predict.Dirs("*"),
				"log":    predict.Files("*.log"),
			})},
			"universe":        {Flags: map[string]complete.Predictor{"l": predict.Nothing}},
			"update-universe": {},
			"topic": {
				Flags: map[string]complete.Predictor{"style": predict.Set{"auto", "dark", "light", "notty", "ascii"}},
				Args:  topics(),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"data":   predict.Dirs("*"),
			"config": predict.Files("*.yaml"),
		},
	}
}

func topics() complete.Predictor {
	names, err := docs.GetAllTopics()
	if err != nil {
		return predict.Nothing
	}
	return predict.Set(append(names, "*"))
}
