package main

import (
	"fmt"
	"os"

	"signalpredictor/cli"
	"signalpredictor/util"

	torch "github.com/wangkuiyi/gotorch"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s mlp|transformer [flags]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "mlp":
		err = cli.RunMLP(os.Args[2:], os.Stderr)
	case "transformer":
		err = cli.RunTransformer(os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	default:
		usage()
		os.Exit(2)
	}
	torch.FinishGC()
	if err != nil {
		util.Logger.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
