package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wudi/pdfreport/xref"
)

type result struct {
	File      string `json:"file"`
	Objects   int    `json:"objects"`
	Size      int    `json:"size"`
	Root      int    `json:"root"`
	StartXRef int64  `json:"startxref"`
	Unindexed []int  `json:"unindexed,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdfcheck <pdf>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	failed := false
	for _, path := range flag.Args() {
		res := check(path)
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "pdfcheck: marshal: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		if res.Error != "" {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(path string) result {
	res := result{File: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	table, err := xref.Parse(data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Objects = len(table.Objects())
	res.Size = table.TrailerSize
	res.Root = table.Root
	res.StartXRef = table.StartXRef
	if err := xref.Verify(data, table); err != nil {
		res.Error = err.Error()
		res.Unindexed = xref.Unindexed(data, table)
	}
	return res
}
