package cmd

import (
	"flag"

	"github.com/etnz/returns"
	"github.com/etnz/returns/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application.
//
// Global flags are read from flag.CommandLine, subcommand flags from each command.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argsPredictor(c),
		}
	}
	return root
}

func argsPredictor(c subcommands.Command) complete.Predictor {
	switch c.Name() {
	case "return", "price":
		var labels predict.Set
		for _, tf := range returns.Timeframes() {
			labels = append(labels, tf.Label)
		}
		return labels
	case "topic":
		topics, _ := docs.Topics()
		return predict.Set(topics)
	}
	return predict.Nothing
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			flags[f.Name] = predict.Set{"text", "table", "markdown"}
		case "source":
			flags[f.Name] = predict.Set{"csv", "sqlite"}
		case "config":
			flags[f.Name] = predict.Files("*.yaml")
		case "db":
			flags[f.Name] = predict.Files("*.db")
		case "data":
			flags[f.Name] = predict.Dirs("*")
		default:
			if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}
