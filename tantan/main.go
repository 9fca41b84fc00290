package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

/******************************************************************************
This file is the entry point for the tantan command line utility.

Initial argparsing and app definition is done entirely through
"github.com/urfave/cli/v2" for which you can find the docs here:

https://github.com/urfave/cli/blob/master/docs/v2/manual.md

tantan's app is defined via the &cli.App{} struct which is initialized with
data needed to run the app. In our case we're providing it Name, Usage, and
Commands at the top level; each Command carries the flags specific to the
repeat model operation it runs.

When naming new flags please make sure they don't collide with already
existent flags and try to follow these naming conventions:

http://www.catb.org/~esr/writings/taoup/html/ch10s05.html
******************************************************************************/

// main is the actual entry point for the command line app. It's separated
// from run and application to help with testing.
func main() {
	run(os.Args)
}

// run is separated from main for debugging's sake.
func run(args []string) {
	app := application()
	err := app.Run(args)
	if err != nil {
		log.Fatal(err)
	}
}

// application defines the instance of the app and its subcommands, each
// with its own flags.
func application() *cli.App {
	app := &cli.App{
		Name:  "tantan",
		Usage: "find and mask simple tandem repeats in biological sequences.",

		Commands: []*cli.Command{
			{
				Name:    "mask",
				Aliases: []string{"m"},
				Usage:   "mask tandem-repeat regions of each sequence by lower-casing them.",
				Flags: append(modelFlags(),
					&cli.Float64Flag{
						Name:  "threshold",
						Value: 0.5,
						Usage: "minimum repeat posterior probability required to mask a position.",
					},
				),
				Action: maskCommand,
			},
			{
				Name:    "probs",
				Aliases: []string{"p"},
				Usage:   "print the per-position posterior probability of being in a repeat.",
				Flags:   modelFlags(),
				Action:  probsCommand,
			},
			{
				Name:    "counts",
				Aliases: []string{"ct"},
				Usage:   "print expected transition counts out of the background state, for parameter re-estimation.",
				Flags:   modelFlags(),
				Action:  countsCommand,
			},
			{
				Name:    "find",
				Aliases: []string{"f"},
				Usage:   "report the most probable repeat intervals via Viterbi decoding.",
				Flags:   modelFlags(),
				Action:  findCommand,
			},
		},
	}

	return app
}

// modelFlags returns the flags that parameterize the repeat model, shared by
// every subcommand that runs it.
func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "alphabet",
			Value: "dna",
			Usage: "sequence alphabet: dna, rna, or protein.",
		},
		&cli.IntFlag{
			Name:  "w",
			Value: 50,
			Usage: "largest tandem-repeat period considered.",
		},
		&cli.Float64Flag{
			Name:  "r",
			Value: 0.005,
			Usage: "per-position probability of entering a repeat from the background state.",
		},
		&cli.Float64Flag{
			Name:  "e",
			Value: 0.05,
			Usage: "per-position probability of leaving a repeat back to the background state.",
		},
		&cli.Float64Flag{
			Name:  "decay",
			Value: 0.9,
			Usage: "repeat-offset probability decay; values below 1 favor short periods.",
		},
		&cli.Float64Flag{
			Name:  "gap",
			Value: 0,
			Usage: "probability of opening an insertion or deletion inside a repeat.",
		},
		&cli.Float64Flag{
			Name:  "gapext",
			Value: 0,
			Usage: "probability of extending an already-open gap by one more position.",
		},
		&cli.Float64Flag{
			Name:  "lambda",
			Value: 0.2,
			Usage: "scale factor converting substitution scores into log-likelihood ratios.",
		},
		&cli.IntFlag{
			Name:  "match",
			Value: 6,
			Usage: "substitution score awarded to identical symbols in the default scoring matrix.",
		},
		&cli.IntFlag{
			Name:  "mismatch",
			Value: -3,
			Usage: "substitution score awarded to differing symbols in the default scoring matrix.",
		},
	}
}
