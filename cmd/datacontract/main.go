package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	datacontract "github.com/reoring/datacontract"
	"github.com/reoring/datacontract/contractio"
	"github.com/reoring/datacontract/frame"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "lint":
		lintCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "datacontract CLI\n\nUsage:\n  datacontract lint contract.yaml [more.yaml ...]\n  datacontract check -contract contract.yaml -data data.csv [-json]\n\nNotes:\n  - lint checks contract definitions only; check validates a CSV against one.")
}

// lintCmd builds each contract document and reports definition errors.
func lintCmd(args []string) {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	failed := false
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("reading %s: %v", path, err)
		}
		if _, err := contractio.DecodeYAML(data); err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

// checkCmd validates a CSV dataset against a contract document.
func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var contractPath string
	var dataPath string
	var asJSON bool
	fs.StringVar(&contractPath, "contract", "", "path to the contract YAML")
	fs.StringVar(&dataPath, "data", "", "path to the CSV dataset")
	fs.BoolVar(&asJSON, "json", false, "print violations as JSON")
	_ = fs.Parse(args)
	if contractPath == "" || dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(contractPath)
	if err != nil {
		fatalf("reading %s: %v", contractPath, err)
	}
	c, err := contractio.DecodeYAML(raw)
	if err != nil {
		fatalf("loading contract: %v", err)
	}

	f, err := os.Open(dataPath)
	if err != nil {
		fatalf("opening %s: %v", dataPath, err)
	}
	defer f.Close()
	tbl, err := frame.ReadCSV(f, c.Schema())
	if err != nil {
		fatalf("reading dataset: %v", err)
	}

	if err := c.Validate(context.Background(), tbl); err != nil {
		vs, ok := datacontract.AsViolations(err)
		if !ok {
			fatalf("validate: %v", err)
		}
		report(vs, asJSON)
		os.Exit(1)
	}
	fmt.Printf("%s: %d rows conform to contract %q\n", dataPath, tbl.NumRows(), c.Name())
}

func report(vs datacontract.Violations, asJSON bool) {
	if asJSON {
		out, err := gojson.MarshalIndent(vs, "", "  ")
		if err != nil {
			fatalf("encoding violations: %v", err)
		}
		fmt.Fprintln(os.Stderr, string(out))
		return
	}
	for _, v := range vs {
		col := v.Column
		if col == "" {
			col = "<dataset>"
		}
		fmt.Fprintf(os.Stderr, "%-24s %-22s %s\n", col, v.Code, v.Message)
	}
	fmt.Fprintf(os.Stderr, "%d violation(s)\n", len(vs))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "datacontract: "+format+"\n", args...)
	os.Exit(1)
}
